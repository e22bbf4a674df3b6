package pagemodel

// ElementType is the kind of an interactive or structural UI element.
// Values outside the known set are kept verbatim and handled by the
// default branches of downstream consumers.
type ElementType string

const (
	ElementButton  ElementType = "button"
	ElementInput   ElementType = "input"
	ElementForm    ElementType = "form"
	ElementLink    ElementType = "link"
	ElementSection ElementType = "section"
	ElementHeading ElementType = "heading"
	ElementOther   ElementType = "other"
)

// UIElement is one element observed on a page.
type UIElement struct {
	Type        ElementType `json:"type"`
	Text        string      `json:"text,omitempty"`
	Description string      `json:"description,omitempty"`
	AriaLabel   string      `json:"ariaLabel,omitempty"`
	Selector    string      `json:"selector,omitempty"`
}

// PageInfo is a crawled page. URL is expected to be absolute.
type PageInfo struct {
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Screenshot  string      `json:"screenshot,omitempty"`
	Elements    []UIElement `json:"elements,omitempty"`
	Links       []string    `json:"links,omitempty"`
}
