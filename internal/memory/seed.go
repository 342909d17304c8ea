package memory

import (
	"time"

	"github.com/mesh-intelligence/propai/internal/catalogue"
)

// seedCatalogue loads the demo data. The caller must hold b.mu.
func seedCatalogue(b *Backend, now time.Time) {
	c := catalogue.Demo(now)
	for _, p := range c.Properties {
		b.properties.insert(p.ID, p)
	}
	for _, u := range c.Users {
		b.users.insert(u.ID, u)
	}
	for _, m := range c.Messages {
		b.messages.insert(m.ID, m)
	}
	for _, col := range c.Collections {
		b.collections.insert(col.ID, col)
	}
}
