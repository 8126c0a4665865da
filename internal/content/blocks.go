package content

// Typed, immutable document fragments. Composers decide what to include;
// the renderer decides how it looks. Business rules never touch markup.

type Block interface {
	isBlock()
}

type Paragraph struct {
	Text string
}

type SubHeading struct {
	Text string
}

type Table struct {
	Header []string
	Rows   [][]string
}

type FaqEntry struct {
	Question string
	Answer   string
}

type FAQ struct {
	Entries []FaqEntry
}

func (Paragraph) isBlock()  {}
func (SubHeading) isBlock() {}
func (Table) isBlock()      {}
func (FAQ) isBlock()        {}

// Section is one titled fragment of a generated document. Anchor is assigned
// by the assembler, only to sections that actually survive composition.
type Section struct {
	Title  string
	Anchor string
	Blocks []Block
}
