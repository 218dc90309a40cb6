package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrUnknownKey is returned by Set for a key the filter does not carry.
var ErrUnknownKey = errors.New("filter: unknown key")

// Coordinator owns one resource's filter record. Every mutation bumps a
// version counter so a fetch can be tied to the exact filter state that
// issued it. Any change except an explicit page change resets the page
// to 1.
type Coordinator struct {
	mu      sync.Mutex
	f       Filter
	version uint64
}

func NewCoordinator(f Filter) *Coordinator {
	return &Coordinator{f: f}
}

// Current returns a copy of the filter record.
func (c *Coordinator) Current() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.f
}

func (c *Coordinator) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Set updates the named field from its string control value. An empty
// value clears optional fields. The updated record is validated before
// being committed; on validation failure the previous state is kept.
func (c *Coordinator) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.f
	if err := apply(&next, key, value); err != nil {
		return err
	}

	// Changing any filter re-anchors to the first page of new results.
	if key != KeyPage {
		next.Page = 1
	}

	if err := validate.Struct(next); err != nil {
		return fmt.Errorf("filter.Set %s=%q: %w", key, value, err)
	}

	c.f = next
	c.version++
	return nil
}

// SetPage is the explicit page change: it moves the cursor without
// touching any other field.
func (c *Coordinator) SetPage(page int) error {
	return c.Set(KeyPage, strconv.Itoa(page))
}

func apply(f *Filter, key, value string) error {
	switch key {
	case KeyPage:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("filter: page %q: %w", value, err)
		}
		f.Page = n
	case KeyLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("filter: limit %q: %w", value, err)
		}
		f.Limit = n
	case KeyStatus:
		f.Status = value
	case KeyPriority:
		f.Priority = value
	case KeySearch:
		f.Search = value
	case KeySortBy:
		f.SortBy = value
	case KeySortOrder:
		f.SortOrder = value
	case KeySort:
		by, order, err := decodeSort(value)
		if err != nil {
			return err
		}
		f.SortBy, f.SortOrder = by, order
	case KeyStartDate:
		t, err := parseDate(value)
		if err != nil {
			return err
		}
		f.StartDate = t
	case KeyEndDate:
		t, err := parseDate(value)
		if err != nil {
			return err
		}
		f.EndDate = t
	case KeyDepartmentID:
		f.DepartmentID = value
	case KeyAssignedTo:
		f.AssignedTo = value
	case KeyRole:
		f.Role = value
	case KeyIsActive:
		if value == "" {
			f.IsActive = nil
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("filter: isActive %q: %w", value, err)
		}
		f.IsActive = &b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// decodeSort splits the composite "field-direction" control value back
// into the two underlying fields.
func decodeSort(value string) (by, order string, err error) {
	i := strings.LastIndex(value, "-")
	if i <= 0 || i == len(value)-1 {
		return "", "", fmt.Errorf("filter: malformed sort value %q", value)
	}
	return value[:i], value[i+1:], nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("filter: date %q: %w", value, err)
	}
	return &t, nil
}
