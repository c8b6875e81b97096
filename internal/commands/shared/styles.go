// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shared

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette for status output (ANSI 256 codes).
var (
	colorError = lipgloss.Color("196") // red
	colorInfo  = lipgloss.Color("39")  // blue
	colorMuted = lipgloss.Color("245") // gray
)

// Styles renders human-readable output for one writer. The color profile
// is detected from the writer itself, so pipes, files and buffers get
// plain text.
type Styles struct {
	Error  lipgloss.Style
	Info   lipgloss.Style
	Muted  lipgloss.Style
	Header lipgloss.Style
}

// NewStyles creates Styles for w.
func NewStyles(w io.Writer) *Styles {
	return newStyles(lipgloss.NewRenderer(w))
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Error:  r.NewStyle().Bold(true).Foreground(colorError),
		Info:   r.NewStyle().Foreground(colorInfo),
		Muted:  r.NewStyle().Foreground(colorMuted),
		Header: r.NewStyle().Bold(true).Foreground(colorInfo),
	}
}

// RenderLabel renders a dim label (for key: value pairs)
func (s *Styles) RenderLabel(label string) string {
	return s.Muted.Render(label)
}

// RenderHeader renders a section header
func (s *Styles) RenderHeader(text string) string {
	return s.Header.Render(text)
}
