package content

import (
	"fmt"
	"strings"
)

// Render serializes assembled sections to the HTML shape the listing
// frontend consumes directly. Rendering is deterministic: same sections in,
// same bytes out.
func Render(sections []Section) string {
	var sb strings.Builder
	for _, section := range sections {
		sb.WriteString(`<section>`)
		fmt.Fprintf(&sb, `<h2 id="%s">%s</h2>`, section.Anchor, section.Title)
		for _, block := range section.Blocks {
			renderBlock(&sb, block)
		}
		sb.WriteString(`</section>`)
	}
	return sb.String()
}

func renderBlock(sb *strings.Builder, block Block) {
	switch b := block.(type) {
	case Paragraph:
		fmt.Fprintf(sb, `<p>%s</p>`, b.Text)
	case SubHeading:
		fmt.Fprintf(sb, `<h3>%s</h3>`, b.Text)
	case Table:
		sb.WriteString(`<table><thead><tr>`)
		for _, h := range b.Header {
			fmt.Fprintf(sb, `<th>%s</th>`, h)
		}
		sb.WriteString(`</tr></thead><tbody>`)
		for _, row := range b.Rows {
			sb.WriteString(`<tr>`)
			for _, cell := range row {
				fmt.Fprintf(sb, `<td>%s</td>`, cell)
			}
			sb.WriteString(`</tr>`)
		}
		sb.WriteString(`</tbody></table>`)
	case FAQ:
		sb.WriteString(`<div class="faq">`)
		for _, entry := range b.Entries {
			fmt.Fprintf(sb, `<h3>%s</h3><p>%s</p>`, entry.Question, entry.Answer)
		}
		sb.WriteString(`</div>`)
	}
}
