package tui

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# Commands

| Command | Description |
|---|---|
| ` + "`run [all\\|sel]`" + ` | Re-run command(s) and verify against stored output |
| ` + "`update [all\\|sel]`" + ` | Accept current output as the new stored truth |
| ` + "`show [all\\|sel]`" + ` | Print stored output and metadata |
| ` + "`filter <pred>...`" + ` | Narrow the list; predicates AND-combine |
| ` + "`clear`" + ` | Drop all filters |
| ` + "`edit`" + ` | Edit the selected snapshot's metadata |
| ` + "`help`" + ` | This page |
| ` + "`quit`" + ` | Leave the session |

Abbreviations: ` + "`q`" + `, ` + "`h`" + `, ` + "`e`" + `. Targets default to the selected snapshot.

Filter predicates: ` + "`tag:smoke`" + `, ` + "`status:failed`" + `,
` + "`name:gr*`" + `, ` + "`cmd:echo`" + `, or a bare substring matched
against name and command. Use arrow keys to move the selection.
`

// renderHelp renders the help page. Glamour failures fall back to the
// raw markdown, which is still readable.
func renderHelp() string {
	out, err := glamour.Render(helpMarkdown, "dark")
	if err != nil {
		return helpMarkdown
	}
	return out
}
