package emailbuilder

// StarterTemplate is a built-in design a new email can start from
type StarterTemplate struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	build       func(ids IDGenerator) []Block
}

// Blocks builds the template's blocks with fresh ids
func (t StarterTemplate) Blocks(ids IDGenerator) []Block {
	return t.build(ids)
}

// preset builds a default block of kind T and lets fn override attributes
func preset[T Block](t BlockType, ids IDGenerator, fn func(T)) Block {
	b := MustNewBlock(t, ids)
	if fn != nil {
		fn(b.(T))
	}
	return b
}

func plain(ids IDGenerator, types ...BlockType) []Block {
	out := make([]Block, len(types))
	for i, t := range types {
		out[i] = MustNewBlock(t, ids)
	}
	return out
}

var starterTemplates = []StarterTemplate{
	{
		Key:         "newsletter",
		Name:        "📨 Newsletter",
		Description: "Header, text, image, call to action and footer",
		build: func(ids IDGenerator) []Block {
			return plain(ids,
				BlockTypeHeader, BlockTypeDivider, BlockTypeTitle, BlockTypeText, BlockTypeImage,
				BlockTypeButton, BlockTypeDivider, BlockTypeSocial, BlockTypeFooter)
		},
	},
	{
		Key:         "promo",
		Name:        "🔥 Promo",
		Description: "Limited time offer with countdown",
		build: func(ids IDGenerator) []Block {
			return []Block{
				preset(BlockTypeHeader, ids, func(b *HeaderBlock) {
					b.Text = "SPECIAL OFFER"
					b.BgColor = "#6c5ce7"
					b.Color = "#ffffff"
				}),
				preset(BlockTypeImage, ids, func(b *ImageBlock) {
					b.Src = "https://via.placeholder.com/600x250/6c5ce7/ffffff?text=PROMO"
				}),
				preset(BlockTypeTitle, ids, func(b *TitleBlock) {
					b.Text = "50% off!"
					b.FontSize = 28
					b.Color = "#6c5ce7"
				}),
				preset(BlockTypeCountdown, ids, func(b *CountdownBlock) {
					b.AccentColor = "#e74c3c"
				}),
				preset(BlockTypeText, ids, func(b *TextBlock) {
					b.Text = "For a limited time only! Take advantage of our exclusive offer."
				}),
				preset(BlockTypeButton, ids, func(b *ButtonBlock) {
					b.Text = "SHOP NOW"
					b.BtnColor = "#e74c3c"
					b.FontSize = 18
					b.BtnPaddingV = 16
					b.BtnPaddingH = 40
				}),
				MustNewBlock(BlockTypeFooter, ids),
			}
		},
	},
	{
		Key:         "showcase",
		Name:        "🛍️ Product showcase",
		Description: "Product cards with prices and discounts",
		build: func(ids IDGenerator) []Block {
			return []Block{
				MustNewBlock(BlockTypeHeader, ids),
				preset(BlockTypeTitle, ids, func(b *TitleBlock) { b.Text = "What's new" }),
				MustNewBlock(BlockTypeDivider, ids),
				preset(BlockTypeProduct, ids, func(b *ProductBlock) {
					b.ProductName = "Premium product"
					b.ProductPrice = 49.99
					b.ProductDescription = "Our bestseller."
				}),
				MustNewBlock(BlockTypeDivider, ids),
				preset(BlockTypeProduct, ids, func(b *ProductBlock) {
					b.ProductName = "Exclusive product"
					b.ProductPrice = 89.99
					b.OriginalPrice = 119.99
					b.Badge = "SALE"
				}),
				MustNewBlock(BlockTypeDivider, ids),
				preset(BlockTypeButton, ids, func(b *ButtonBlock) { b.Text = "See all products" }),
				MustNewBlock(BlockTypeFooter, ids),
			}
		},
	},
	{
		Key:         "update",
		Name:        "📰 Update",
		Description: "Personalized greeting and a list of news",
		build: func(ids IDGenerator) []Block {
			news := func(title, text string) []Block {
				return []Block{
					preset(BlockTypeTitle, ids, func(b *TitleBlock) {
						b.Text = title
						b.FontSize = 20
					}),
					preset(BlockTypeText, ids, func(b *TextBlock) { b.Text = text }),
					MustNewBlock(BlockTypeDivider, ids),
				}
			}
			blocks := []Block{
				MustNewBlock(BlockTypeHeader, ids),
				preset(BlockTypeText, ids, func(b *TextBlock) { b.Text = "Hi {{ first_name }}! Here is what's new." }),
				MustNewBlock(BlockTypeDivider, ids),
			}
			blocks = append(blocks, news("News #1", "Description of the first news.")...)
			blocks = append(blocks, news("News #2", "Description of the second news.")...)
			return append(blocks,
				preset(BlockTypeButton, ids, func(b *ButtonBlock) { b.Text = "Read everything" }),
				MustNewBlock(BlockTypeFooter, ids))
		},
	},
	{
		Key:         "greetings",
		Name:        "🎉 Greetings",
		Description: "Seasonal greetings with image and call to action",
		build: func(ids IDGenerator) []Block {
			return []Block{
				preset(BlockTypeSpacer, ids, func(b *SpacerBlock) { b.Height = 20 }),
				preset(BlockTypeImage, ids, func(b *ImageBlock) {
					b.Src = "https://via.placeholder.com/600x300/2d3436/ffffff?text=Happy+Holidays"
				}),
				preset(BlockTypeTitle, ids, func(b *TitleBlock) {
					b.Text = "Happy holidays!"
					b.FontSize = 32
					b.Color = "#e74c3c"
				}),
				preset(BlockTypeText, ids, func(b *TextBlock) { b.Text = "Thank you for being with us this year!" }),
				preset(BlockTypeButton, ids, func(b *ButtonBlock) {
					b.Text = "Join the celebration"
					b.BtnColor = "#00b894"
				}),
				MustNewBlock(BlockTypeSocial, ids),
				MustNewBlock(BlockTypeFooter, ids),
			}
		},
	},
}

// StarterTemplates lists the built-in templates
func StarterTemplates() []StarterTemplate {
	return append([]StarterTemplate(nil), starterTemplates...)
}

// FindStarterTemplate returns the built-in template with the given key
func FindStarterTemplate(key string) (StarterTemplate, bool) {
	for _, t := range starterTemplates {
		if t.Key == key {
			return t, true
		}
	}
	return StarterTemplate{}, false
}
