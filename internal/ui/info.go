package ui

import (
	"fmt"
	"strings"

	"github.com/dlukegordon/majjit/internal/ui/styles"
)

// infoPanel accumulates messages shown below the tree: jj command failures
// and key-handling notices. Repeats of the newest message coalesce into a
// counter instead of stacking up.
type infoPanel struct {
	messages []infoMessage
}

type infoMessage struct {
	text  string
	isErr bool
	count int
}

func (p *infoPanel) add(text string, isErr bool) {
	if n := len(p.messages); n > 0 && p.messages[n-1].text == text {
		p.messages[n-1].count++
		return
	}
	p.messages = append(p.messages, infoMessage{text: text, isErr: isErr, count: 1})
}

func (p *infoPanel) clear() {
	p.messages = nil
}

func (p *infoPanel) empty() bool {
	return len(p.messages) == 0
}

// render returns the panel's display lines, newest message last.
func (p *infoPanel) render() []string {
	if p.empty() {
		return nil
	}

	lines := []string{styles.InfoTitle.Render("Messages") + styles.StatusBar.Render("  (esc to dismiss)")}
	for _, m := range p.messages {
		for _, line := range strings.Split(m.text, "\n") {
			if m.isErr {
				line = styles.InfoError.Render(line)
			}
			lines = append(lines, line)
		}
		if m.count > 1 {
			lines[len(lines)-1] += styles.StatusBar.Render(fmt.Sprintf(" (x%d)", m.count))
		}
	}
	return lines
}
