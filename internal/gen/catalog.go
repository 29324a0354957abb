package gen

// catalogEntry is one purchasable product with its category and the
// price band (in cents) the generator draws unit prices from.
type catalogEntry struct {
	Product  string
	Category string
	MinPrice int64
	MaxPrice int64
}

// catalog is the fixed product universe. Categories are deliberately
// uneven in size and price so the category and top-product reports have
// visible structure even on small runs.
var catalog = []catalogEntry{
	{"Wireless Mouse", "Electronics", 1299, 3999},
	{"Mechanical Keyboard", "Electronics", 4999, 14999},
	{"USB-C Hub", "Electronics", 1999, 5999},
	{"27in Monitor", "Electronics", 14999, 39999},
	{"Noise Cancelling Headphones", "Electronics", 7999, 29999},
	{"Webcam", "Electronics", 2999, 9999},

	{"Desk Lamp", "Home", 1499, 4999},
	{"Scented Candle", "Home", 599, 1999},
	{"Throw Blanket", "Home", 1999, 5999},
	{"Cast Iron Skillet", "Home", 2499, 7999},

	{"Notebook", "Office", 299, 999},
	{"Gel Pen Set", "Office", 499, 1499},
	{"Standing Desk Mat", "Office", 2999, 8999},
	{"Desk Organizer", "Office", 999, 2999},

	{"Running Shoes", "Sports", 4999, 15999},
	{"Yoga Mat", "Sports", 1999, 6999},
	{"Water Bottle", "Sports", 899, 2999},

	{"Graphic Novel", "Books", 999, 2999},
	{"Cookbook", "Books", 1499, 4499},
	{"Field Guide", "Books", 1199, 3499},
}

const (
	// customerPoolSize bounds the customer universe so repeat
	// purchases occur at realistic generation counts.
	customerPoolSize = 400

	maxQuantity = 5
)
