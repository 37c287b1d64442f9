package testutil

// WithOrderTestData adds the standard orders dataset.
//
//	order-1  open     120    "Widget"     active   2024-03-15
//	order-2  closed   15.5   "Gadget"     inactive 2023-11-02
//	order-3  pending  99.99  ""           active   2024-06-30
//	order-4  open     -5     "widget pro" active   (no createdAt)
//	order-5  closed   1000   nil          inactive 2025-01-01
func (b *Builder) WithOrderTestData() *Builder {
	return b.
		WithRow("order-1",
			Status("open"), Price(120), Name("Widget"), Active(true),
			Field("createdAt", "2024-03-15")).
		WithRow("order-2",
			Status("closed"), Price(15.5), Name("Gadget"), Active(false),
			Field("createdAt", "2023-11-02")).
		WithRow("order-3",
			Status("pending"), Price(99.99), Name(""), Active(true),
			Field("createdAt", "2024-06-30")).
		WithRow("order-4",
			Status("open"), Price(-5), Name("widget pro"), Active(true),
			Without("createdAt")).
		WithRow("order-5",
			Status("closed"), Price(1000), Field("name", nil), Active(false),
			Field("createdAt", "2025-01-01"))
}
