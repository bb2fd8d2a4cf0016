package emailbuilder

func bound(v float64) *float64 { return &v }

func textField(key, label string) FormField {
	return FormField{Key: key, Label: label, Type: "text"}
}

func urlField(key, label string) FormField {
	return FormField{Key: key, Label: label, Type: "url"}
}

func colorField(key, label string) FormField {
	return FormField{Key: key, Label: label, Type: "color"}
}

func toggleField(key, label string) FormField {
	return FormField{Key: key, Label: label, Type: "toggle"}
}

func numberField(key, label string, min, max float64) FormField {
	return FormField{Key: key, Label: label, Type: "number", Min: bound(min), Max: bound(max)}
}

func selectField(key, label string, options ...FormFieldOption) FormField {
	return FormField{Key: key, Label: label, Type: "select", Options: options}
}

var fontOptions = []FormFieldOption{
	{Value: "Arial, Helvetica, sans-serif", Label: "Arial"},
	{Value: "Georgia, serif", Label: "Georgia"},
	{Value: "'Times New Roman', Times, serif", Label: "Times New Roman"},
	{Value: "Verdana, Geneva, sans-serif", Label: "Verdana"},
	{Value: "'Trebuchet MS', sans-serif", Label: "Trebuchet MS"},
	{Value: "'Courier New', Courier, monospace", Label: "Courier New"},
	{Value: "Tahoma, Geneva, sans-serif", Label: "Tahoma"},
}

func layoutFields() []FormField {
	return []FormField{
		selectField("align", "Alignment",
			FormFieldOption{Value: "left", Label: "Left"},
			FormFieldOption{Value: "center", Label: "Center"},
			FormFieldOption{Value: "right", Label: "Right"}),
		colorField("bgColor", "Background"),
		numberField("paddingTop", "Padding top", 0, 100),
		numberField("paddingRight", "Padding right", 0, 100),
		numberField("paddingBottom", "Padding bottom", 0, 100),
		numberField("paddingLeft", "Padding left", 0, 100),
		numberField("borderTop", "Border top", 0, 10),
		numberField("borderBottom", "Border bottom", 0, 10),
		colorField("borderColor", "Border color"),
		numberField("borderRadius", "Border radius", 0, 50),
	}
}

func typographyFields() []FormField {
	lineHeight := numberField("lineHeight", "Line height", 0.8, 3)
	lineHeight.Step = bound(0.1)
	return []FormField{
		colorField("color", "Color"),
		{Key: "fontFamily", Label: "Font", Type: "select", Options: fontOptions},
		numberField("fontSize", "Size", 8, 72),
		lineHeight,
		numberField("letterSpacing", "Letter spacing", -2, 10),
		toggleField("bold", "Bold"),
		toggleField("italic", "Italic"),
		toggleField("underline", "Underline"),
	}
}

func textContentFields() []FormField {
	return append([]FormField{{Key: "text", Label: "Text", Type: "textarea"}}, typographyFields()...)
}

func with(fields ...[]FormField) []FormField {
	var out []FormField
	for _, f := range fields {
		out = append(out, f...)
	}
	return out
}

func (b *HeaderBlock) Fields() []FormField { return with(textContentFields(), layoutFields()) }
func (b *TitleBlock) Fields() []FormField { return with(textContentFields(), layoutFields()) }
func (b *TextBlock) Fields() []FormField { return with(textContentFields(), layoutFields()) }

func (b *HTMLBlock) Fields() []FormField {
	return with([]FormField{{Key: "rawHtml", Label: "HTML", Type: "code"}}, layoutFields())
}

func (b *QuoteBlock) Fields() []FormField {
	return with(textContentFields(), []FormField{
		colorField("borderLeftColor", "Bar color"),
		numberField("borderLeftWidth", "Bar width", 1, 12),
	}, layoutFields())
}

func (b *ListBlock) Fields() []FormField {
	return with([]FormField{
		{Key: "items", Label: "Items", Type: "list"},
		toggleField("ordered", "Numbered"),
	}, typographyFields(), layoutFields())
}

func (b *ButtonBlock) Fields() []FormField {
	return with(textContentFields(), []FormField{
		colorField("btnColor", "Button color"),
		urlField("href", "Link"),
		numberField("btnRadius", "Border radius", 0, 50),
		numberField("btnPaddingV", "Vertical padding", 4, 40),
		numberField("btnPaddingH", "Horizontal padding", 8, 80),
		toggleField("fullWidth", "Full width"),
	}, layoutFields())
}

func (b *ImageBlock) Fields() []FormField {
	return with([]FormField{
		{Key: "src", Label: "Image", Type: "image"},
		textField("alt", "Alt text"),
		textField("width", "Width"),
		urlField("href", "Link"),
	}, layoutFields())
}

func (b *DividerBlock) Fields() []FormField {
	return with([]FormField{
		colorField("dividerColor", "Color"),
		numberField("dividerHeight", "Thickness", 1, 10),
		selectField("dividerStyle", "Style",
			FormFieldOption{Value: "solid", Label: "Solid"},
			FormFieldOption{Value: "dashed", Label: "Dashed"},
			FormFieldOption{Value: "dotted", Label: "Dotted"}),
		textField("dividerWidth", "Width"),
	}, layoutFields())
}

func (b *SpacerBlock) Fields() []FormField {
	return []FormField{
		numberField("height", "Height", 5, 200),
		colorField("bgColor", "Background"),
	}
}

// Columns edit their gap here, nested blocks are edited individually
func (b *ColumnsBlock) Fields() []FormField {
	return with([]FormField{numberField("columnGap", "Column gap", 0, 40)}, layoutFields())
}

func (b *SocialBlock) Fields() []FormField {
	platforms := make([]FormFieldOption, 0, len(SocialPlatforms))
	for _, key := range []string{"facebook", "instagram", "twitter", "linkedin", "youtube", "tiktok", "whatsapp", "telegram", "website"} {
		platforms = append(platforms, FormFieldOption{Value: key, Label: SocialPlatforms[key].Label})
	}
	return with([]FormField{
		{Key: "links", Label: "Links", Type: "links", Options: platforms},
		numberField("iconSize", "Icon size", 16, 48),
		numberField("iconSpacing", "Icon spacing", 0, 40),
	}, layoutFields())
}

func (b *FooterBlock) Fields() []FormField {
	return with(textContentFields(), []FormField{
		textField("unsubText", "Unsubscribe text"),
		urlField("unsubUrl", "Unsubscribe link"),
		toggleField("showAddress", "Show address"),
		textField("address", "Address"),
	}, layoutFields())
}

func (b *VideoBlock) Fields() []FormField {
	return with([]FormField{
		urlField("videoUrl", "Video link"),
		{Key: "thumbnailUrl", Label: "Thumbnail", Type: "image"},
	}, layoutFields())
}

func (b *ProductBlock) Fields() []FormField {
	return with([]FormField{
		textField("productName", "Name"),
		{Key: "productDescription", Label: "Description", Type: "textarea"},
		numberField("productPrice", "Price", 0, 1e6),
		numberField("originalPrice", "Original price", 0, 1e6),
		selectField("currency", "Currency",
			FormFieldOption{Value: "EUR", Label: "€ EUR"},
			FormFieldOption{Value: "USD", Label: "$ USD"},
			FormFieldOption{Value: "GBP", Label: "£ GBP"},
			FormFieldOption{Value: "CHF", Label: "CHF"},
			FormFieldOption{Value: "JPY", Label: "¥ JPY"}),
		{Key: "productImage", Label: "Image", Type: "image"},
		urlField("productUrl", "Link"),
		textField("btnText", "Button text"),
		colorField("btnColor", "Button color"),
		colorField("btnTextColor", "Button text color"),
		textField("badge", "Badge"),
		colorField("badgeColor", "Badge color"),
		selectField("imagePosition", "Image position",
			FormFieldOption{Value: "top", Label: "Top"},
			FormFieldOption{Value: "left", Label: "Left"}),
		colorField("color", "Text color"),
		numberField("nameSize", "Name size", 12, 36),
		numberField("priceSize", "Price size", 12, 48),
	}, layoutFields())
}

func (b *CountdownBlock) Fields() []FormField {
	return with([]FormField{
		{Key: "endDate", Label: "End date", Type: "datetime"},
		textField("label", "Label"),
		textField("expiredLabel", "Expired label"),
		colorField("accentColor", "Accent color"),
		colorField("digitColor", "Digit color"),
		colorField("digitBg", "Digit background"),
		colorField("labelColor", "Label color"),
		numberField("digitSize", "Digit size", 16, 64),
		toggleField("showDays", "Days"),
		toggleField("showHours", "Hours"),
		toggleField("showMinutes", "Minutes"),
		toggleField("showSeconds", "Seconds"),
	}, layoutFields())
}

// FieldsFor returns the property schema of a block type
func FieldsFor(t BlockType) ([]FormField, error) {
	b, err := NewBlock(t, noIDs{})
	if err != nil {
		return nil, err
	}
	return b.Fields(), nil
}
