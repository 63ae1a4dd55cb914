package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown 使用 Glamour 渲染 markdown 文本
// RenderMarkdown renders markdown text using Glamour
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

const helpText = `# Keys

| Key | Action |
|-----|--------|
| tab / shift+tab | switch editor tab |
| ↑ / ↓ | move between fields |
| enter | apply the focused field or button |
| ctrl+s | submit a text area (NPC log import) |
| ctrl+r | reload the slot from disk |
| esc | back / close this help |
| q | quit (slot list) |
| ctrl+c | quit from anywhere |

# Pages

- **Slots**: pick a save, or press ` + "`n`" + ` to generate a fresh one.
- **Summary**: read-only overview, enter opens the editor.
- **Editor**: one tab per feature; every write takes a backup first.
- **Backups**: enter restores the selected snapshot, ` + "`a`" + ` replays
  the initial backup, ` + "`x`" + ` purges the backup tree.
`

// RenderHelp 渲染帮助浮层 / RenderHelp renders the help overlay.
func RenderHelp(width int) string {
	return RenderMarkdown(helpText, width)
}
