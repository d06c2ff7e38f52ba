package results

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

const (
	// CopyAckDuration is how long a row shows its copied acknowledgment
	CopyAckDuration = 2 * time.Second

	// LabelCopy and LabelCopied are the per-row action captions
	LabelCopy   = "Copy"
	LabelCopied = "Copied!"

	// MsgCopyFailed is shown when the clipboard rejects a write
	MsgCopyFailed = "Failed to copy to clipboard"
)

// ErrNoSuchRow is returned when copying a row index that is not rendered
var ErrNoSuchRow = errors.New("no such result row")

// Clipboard receives copied text
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard
type SystemClipboard struct{}

// WriteAll implements Clipboard
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Ack identifies one copy acknowledgment so a late reset cannot revert a
// newer one
type Ack struct {
	Row   int
	Token uint64
}

// RowView is a rendered row as the front end draws it
type RowView struct {
	Text   string
	Label  string
	Copied bool
}

type row struct {
	text  string
	token uint64 // non-zero while acknowledged
}

// Renderer holds the result panel and the inline error channel
type Renderer struct {
	clip   Clipboard
	title  string
	rows   []row
	errMsg string
	tokens uint64
}

// NewRenderer returns an empty renderer. A nil clipboard uses the system one.
func NewRenderer(clip Clipboard) *Renderer {
	if clip == nil {
		clip = SystemClipboard{}
	}
	return &Renderer{clip: clip}
}

// Render replaces prior output with title and one row per string, in order
func (r *Renderer) Render(title string, strs []string) {
	r.Clear()
	r.title = title
	r.rows = make([]row, len(strs))
	for i, s := range strs {
		r.rows[i] = row{text: s}
	}
}

// Clear removes results and any error. Clearing an empty panel is a no-op.
func (r *Renderer) Clear() {
	r.title = ""
	r.rows = nil
	r.errMsg = ""
}

// ShowError sets the inline error without touching rendered rows
func (r *Renderer) ShowError(msg string) {
	r.errMsg = msg
}

// Error returns the inline error, empty when none
func (r *Renderer) Error() string { return r.errMsg }

// Title returns the results title, empty when nothing is rendered
func (r *Renderer) Title() string { return r.title }

// Len returns the number of rendered rows
func (r *Renderer) Len() int { return len(r.rows) }

// Visible reports whether the results panel has anything to show
func (r *Renderer) Visible() bool { return r.title != "" || len(r.rows) > 0 }

// Strings returns the rendered texts in order
func (r *Renderer) Strings() []string {
	out := make([]string, len(r.rows))
	for i, rw := range r.rows {
		out[i] = rw.text
	}
	return out
}

// Rows returns the rows as drawn
func (r *Renderer) Rows() []RowView {
	out := make([]RowView, len(r.rows))
	for i, rw := range r.rows {
		v := RowView{Text: rw.text, Label: LabelCopy}
		if rw.token != 0 {
			v.Label = LabelCopied
			v.Copied = true
		}
		out[i] = v
	}
	return out
}

// Copy writes row i to the clipboard and marks it copied. The caller
// schedules ResetCopy(ack) after CopyAckDuration. On clipboard failure the
// error channel shows MsgCopyFailed and rows are left as they were.
func (r *Renderer) Copy(i int) (Ack, error) {
	if i < 0 || i >= len(r.rows) {
		return Ack{}, fmt.Errorf("%w: %d", ErrNoSuchRow, i)
	}
	if err := r.clip.WriteAll(r.rows[i].text); err != nil {
		r.ShowError(MsgCopyFailed)
		return Ack{}, fmt.Errorf("clipboard write failed: %w", err)
	}
	r.tokens++
	r.rows[i].token = r.tokens
	return Ack{Row: i, Token: r.tokens}, nil
}

// ResetCopy reverts the acknowledgment identified by ack. Stale acks (from
// an earlier render or superseded by a newer copy of the same row) are
// ignored.
func (r *Renderer) ResetCopy(ack Ack) {
	if ack.Row < 0 || ack.Row >= len(r.rows) {
		return
	}
	if r.rows[ack.Row].token == ack.Token {
		r.rows[ack.Row].token = 0
	}
}
