// Package cart holds the shopping cart model. A Cart is a value: every
// operation returns a new Cart and leaves the receiver and any product it was
// built from untouched.
package cart

import (
	"encoding/json"
	"strconv"
	"strings"

	"storefront/models"

	"github.com/shopspring/decimal"
)

// Line is one product+quantity pairing. Name and UnitPrice are copied from
// the product when the line is created.
type Line struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	lines []Line
}

// New builds a cart from lines, merging duplicates and dropping lines with a
// quantity below one.
func New(lines ...Line) Cart {
	var c Cart
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		c = c.addLine(l)
	}
	return c
}

// Add puts quantity units of p into the cart. A quantity below one counts as
// one.
func (c Cart) Add(p models.Product, quantity int) Cart {
	if quantity < 1 {
		quantity = 1
	}
	return c.addLine(Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  quantity,
	})
}

func (c Cart) addLine(l Line) Cart {
	next := c.copyLines()
	if i := c.index(l.ProductID); i >= 0 {
		next[i].Quantity += l.Quantity
		return Cart{lines: next}
	}
	return Cart{lines: append(next, l)}
}

// SetQuantity is a no-op unless quantity is at least one and the product is
// already in the cart.
func (c Cart) SetQuantity(productID, quantity int) Cart {
	i := c.index(productID)
	if i < 0 || quantity < 1 {
		return c
	}
	next := c.copyLines()
	next[i].Quantity = quantity
	return Cart{lines: next}
}

func (c Cart) Increase(productID int) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	next := c.copyLines()
	next[i].Quantity++
	return Cart{lines: next}
}

// Decrease never takes a line below one; use Remove to drop it.
func (c Cart) Decrease(productID int) Cart {
	i := c.index(productID)
	if i < 0 || c.lines[i].Quantity <= 1 {
		return c
	}
	next := c.copyLines()
	next[i].Quantity--
	return Cart{lines: next}
}

func (c Cart) Remove(productID int) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	next := make([]Line, 0, len(c.lines)-1)
	next = append(next, c.lines[:i]...)
	next = append(next, c.lines[i+1:]...)
	return Cart{lines: next}
}

func (c Cart) Clear() Cart {
	return Cart{}
}

// Lines returns a copy of the lines in insertion order.
func (c Cart) Lines() []Line {
	return c.copyLines()
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity returns 0 when the product is not in the cart.
func (c Cart) Quantity(productID int) int {
	if i := c.index(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// TotalString renders the total with two decimals for display.
func (c Cart) TotalString() string {
	return c.Total().StringFixed(2)
}

func (c Cart) MarshalJSON() ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*c = New(lines...)
	return nil
}

func (c Cart) index(productID int) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) copyLines() []Line {
	if len(c.lines) == 0 {
		return nil
	}
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ParseQuantity coerces user-entered text to a quantity. ok is false for
// anything that is not a positive integer.
func ParseQuantity(raw string) (quantity int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
