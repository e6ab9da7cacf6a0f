package actions

// typeText types a literal string into the foreground application.
//
// Params: "text" (required).
func typeText(params map[string]any) error {
	text, err := stringParam(params, "text")
	if err != nil {
		return err
	}
	return typeString(text)
}
