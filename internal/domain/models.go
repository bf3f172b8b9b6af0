package domain

// ItemType is the kind of node in a story tree
type ItemType string

const (
	TypeComponent ItemType = "component"
	TypeDocs      ItemType = "docs"
	TypeStory     ItemType = "story"
	TypeGroup     ItemType = "group"
	TypeRoot      ItemType = "root"
)

// StatusValue is one level of a rendering status check
type StatusValue string

const (
	StatusUnknown StatusValue = "unknown"
	StatusSuccess StatusValue = "success"
	StatusPending StatusValue = "pending"
	StatusWarn    StatusValue = "warn"
	StatusError   StatusValue = "error"
)

// statusSeverity orders status values from least to most severe.
// Error outranks everything; unknown ranks below success.
var statusSeverity = map[StatusValue]int{
	StatusUnknown: 0,
	StatusSuccess: 1,
	StatusPending: 2,
	StatusWarn:    3,
	StatusError:   4,
}

// Severity returns the rank of a status value for comparison.
// Unrecognized values rank lowest.
func (s StatusValue) Severity() int {
	return statusSeverity[s]
}

// MostSevere returns the highest-severity value among the given
// statuses, or StatusUnknown for an empty input.
func MostSevere(values ...StatusValue) StatusValue {
	result := StatusUnknown
	for _, v := range values {
		if v.Severity() > result.Severity() {
			result = v
		}
	}
	return result
}

// StatusResult is the outcome of a single named check against a story
type StatusResult struct {
	Value       StatusValue
	Title       string
	Description string
}

// IndexEntry represents a node in a story tree
type IndexEntry struct {
	ID     string
	Name   string
	Path   string
	Type   ItemType
	Parent string // parent entry id ("" at the top of the tree)
}

// RefIndex is one reference's index: entries keyed by id plus the
// status data reported for them
type RefIndex struct {
	Title       string
	Entries     map[string]IndexEntry
	StoryStatus map[string]map[string]StatusResult // id -> check name -> result
	GroupStatus map[string]StatusValue             // pre-aggregated status per group id
}

// Ref pairs a reference id with its loaded index
type Ref struct {
	ID    string
	Index *RefIndex
}

// Dataset is the combined view across all loaded references. Refs keeps
// the load order; Lookup provides access by reference id.
type Dataset struct {
	Refs   []Ref
	Lookup map[string]*RefIndex
}

// NewDataset creates an empty combined dataset
func NewDataset() *Dataset {
	return &Dataset{
		Lookup: make(map[string]*RefIndex),
	}
}

// Add appends a reference, replacing any existing one with the same id
// while keeping its original position in the order.
func (d *Dataset) Add(refID string, index *RefIndex) {
	if _, exists := d.Lookup[refID]; exists {
		d.Lookup[refID] = index
		for i := range d.Refs {
			if d.Refs[i].ID == refID {
				d.Refs[i].Index = index
				break
			}
		}
		return
	}
	d.Refs = append(d.Refs, Ref{ID: refID, Index: index})
	d.Lookup[refID] = index
}

// Ref returns the index for a reference id, or nil if not loaded
func (d *Dataset) Ref(refID string) *RefIndex {
	return d.Lookup[refID]
}

// Entry resolves an entry by reference and entry id
func (d *Dataset) Entry(refID, id string) (IndexEntry, bool) {
	index := d.Lookup[refID]
	if index == nil {
		return IndexEntry{}, false
	}
	entry, ok := index.Entries[id]
	return entry, ok
}

// Selection identifies a previously viewed story within a reference
type Selection struct {
	StoryID string
	RefID   string
}
