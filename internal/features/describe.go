package features

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
)

const placeholderText = "this element"

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

func describeFeature(name string, count int, style Style) string {
	switch style {
	case StyleTechnical:
		return fmt.Sprintf("%s consists of %d UI element%s", name, count, plural(count))
	case StyleFunctional:
		return fmt.Sprintf("%s provides functionality through %d interactive element%s", name, count, plural(count))
	case StyleScenarioBased:
		return fmt.Sprintf("Users can accomplish %s tasks using the available %d element%s",
			strings.ToLower(name), count, plural(count))
	default:
		return name
	}
}

func describeElement(el pagemodel.UIElement, style Style) string {
	switch style {
	case StyleTechnical:
		if el.AriaLabel != "" {
			return fmt.Sprintf("%s element (%s)", el.Type, el.AriaLabel)
		}
		return fmt.Sprintf("%s element", el.Type)
	case StyleFunctional:
		return functionalDescription(el)
	case StyleScenarioBased:
		return scenarioDescription(el)
	default:
		return ""
	}
}

func displayText(el pagemodel.UIElement) string {
	if el.Text == "" {
		return placeholderText
	}
	return el.Text
}

func functionalDescription(el pagemodel.UIElement) string {
	text := displayText(el)
	switch el.Type {
	case pagemodel.ElementButton:
		return fmt.Sprintf(`Click "%s" to perform the action`, text)
	case pagemodel.ElementInput:
		return fmt.Sprintf(`Enter information in the "%s" field`, text)
	case pagemodel.ElementForm:
		return fmt.Sprintf(`Complete and submit the "%s" form`, text)
	case pagemodel.ElementLink:
		return fmt.Sprintf(`Navigate to "%s"`, text)
	case pagemodel.ElementSection:
		return fmt.Sprintf(`View information in the "%s" section`, text)
	case pagemodel.ElementHeading:
		return fmt.Sprintf(`Section titled "%s"`, text)
	default:
		return fmt.Sprintf(`Interact with "%s"`, text)
	}
}

func scenarioDescription(el pagemodel.UIElement) string {
	text := displayText(el)
	switch el.Type {
	case pagemodel.ElementButton:
		return fmt.Sprintf(`When you want to proceed, click the "%s" button`, text)
	case pagemodel.ElementInput:
		return fmt.Sprintf(`You can provide your information by typing in the "%s" field`, text)
	case pagemodel.ElementForm:
		return fmt.Sprintf(`To complete this task, fill out the "%s" form and submit`, text)
	case pagemodel.ElementLink:
		return fmt.Sprintf(`If you need to access "%s", click this link`, text)
	default:
		return fmt.Sprintf(`Use "%s" to interact with this feature`, text)
	}
}
