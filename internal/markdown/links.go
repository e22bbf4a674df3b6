package markdown

// LinkKind identifies the Markdown construct a link came from.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a destination found in a Markdown body.
type Link struct {
	Kind        LinkKind
	Destination string
}
