package session

import (
	"sync"

	"arso-weather/models"
)

// Cell is a single-slot holder for the currently displayed forecast.
// Writes replace the whole value atomically; subscribers are notified of
// every replacement. There is deliberately no partial merge.
type Cell struct {
	mutex    sync.RWMutex
	current  models.Forecast
	hasValue bool
	subs     []chan models.Forecast
}

// NewCell creates an empty forecast cell
func NewCell() *Cell {
	return &Cell{}
}

// Current returns the latest forecast and whether one has been set
func (c *Cell) Current() (models.Forecast, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.current, c.hasValue
}

// Replace atomically swaps in a new forecast and notifies subscribers.
// A subscriber that has not drained its previous notification only sees
// the newest value.
func (c *Cell) Replace(forecast models.Forecast) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.current = forecast
	c.hasValue = true

	for _, sub := range c.subs {
		select {
		case <-sub:
		default:
		}
		sub <- forecast
	}
}

// Subscribe returns a channel that receives each replacement. The channel
// holds at most the latest value; slow consumers never block a writer.
func (c *Cell) Subscribe() <-chan models.Forecast {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	sub := make(chan models.Forecast, 1)
	if c.hasValue {
		sub <- c.current
	}
	c.subs = append(c.subs, sub)
	return sub
}
