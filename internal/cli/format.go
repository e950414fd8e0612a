// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

func printSuccess(w io.Writer, format string, args ...interface{}) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...interface{}) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(w, "✗ %s\n", fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...interface{}) {
	_, _ = dimColor.Fprintf(w, "    %s\n", fmt.Sprintf(format, args...))
}

func printSection(w io.Writer, title string) {
	_, _ = sectionTitleColor.Fprintf(w, "%s\n", title)
}
