package autostart

import (
	"fmt"
	"strings"

	"github.com/Guliveer/bootlist/internal/locator"
	"github.com/Guliveer/bootlist/internal/models"
)

// Chain merges several backends. Listings are concatenated in order;
// mutations go to the first member that owns the locator. New entries are
// created by the first member.
type Chain struct {
	members []Backend
}

// NewChain combines members into a single Backend.
func NewChain(members ...Backend) *Chain {
	return &Chain{members: members}
}

// Name joins the member names.
func (c *Chain) Name() string {
	names := make([]string, len(c.members))
	for i, m := range c.members {
		names[i] = m.Name()
	}
	return strings.Join(names, "+")
}

// Sources returns every member's sources.
func (c *Chain) Sources() []string {
	var out []string
	for _, m := range c.members {
		out = append(out, m.Sources()...)
	}
	return out
}

// Enumerate concatenates member listings.
func (c *Chain) Enumerate() []models.Entry {
	var out []models.Entry
	for _, m := range c.members {
		out = append(out, m.Enumerate()...)
	}
	return out
}

// Owns reports whether any member owns loc.
func (c *Chain) Owns(loc locator.Locator) bool {
	return c.owner(loc) != nil
}

// Toggle dispatches to the owning member.
func (c *Chain) Toggle(loc locator.Locator, enable bool) error {
	m := c.owner(loc)
	if m == nil {
		return fmt.Errorf("%w: %s", ErrOutsideSource, loc)
	}
	return m.Toggle(loc, enable)
}

// Create delegates to the first member.
func (c *Chain) Create(name, command, description string) error {
	if len(c.members) == 0 {
		return ErrUnsupported
	}
	return c.members[0].Create(name, command, description)
}

// Delete dispatches to the owning member.
func (c *Chain) Delete(loc locator.Locator) error {
	m := c.owner(loc)
	if m == nil {
		return fmt.Errorf("%w: %s", ErrOutsideSource, loc)
	}
	return m.Delete(loc)
}

func (c *Chain) owner(loc locator.Locator) Backend {
	for _, m := range c.members {
		if m.Owns(loc) {
			return m
		}
	}
	return nil
}
