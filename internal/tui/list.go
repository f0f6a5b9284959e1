package tui

// listItem is one row of a result list.
type listItem struct {
	ID    string
	Label string
	Meta  string
}

// resultList is a cursor over a filtered result list. The query is
// applied by the engine search functions before items are set; the list
// only keeps the cursor on the same item across refreshes.
type resultList struct {
	title  string
	items  []listItem
	query  string
	cursor int
}

func newResultList(title string) *resultList {
	return &resultList{title: title}
}

// SetItems replaces the items, keeping the cursor on the previously
// current item when it is still present.
func (l *resultList) SetItems(items []listItem) {
	current, hadCurrent := l.Current()
	l.items = append([]listItem(nil), items...)
	if hadCurrent {
		for i, it := range l.items {
			if it.ID == current.ID {
				l.cursor = i
				return
			}
		}
	}
	l.clamp()
}

func (l *resultList) clamp() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *resultList) Items() []listItem {
	return append([]listItem(nil), l.items...)
}

func (l *resultList) Cursor() int { return l.cursor }

func (l *resultList) Query() string { return l.query }

func (l *resultList) CursorUp() bool {
	if l.cursor > 0 {
		l.cursor--
		return true
	}
	return false
}

func (l *resultList) CursorDown() bool {
	if l.cursor < len(l.items)-1 {
		l.cursor++
		return true
	}
	return false
}

func (l *resultList) Current() (listItem, bool) {
	if len(l.items) == 0 || l.cursor < 0 || l.cursor >= len(l.items) {
		return listItem{}, false
	}
	return l.items[l.cursor], true
}

// HandleQueryKey edits the search query. It reports whether the query
// changed.
func (l *resultList) HandleQueryKey(keyName string) bool {
	switch keyName {
	case "backspace":
		if len(l.query) == 0 {
			return false
		}
		l.query = l.query[:len(l.query)-1]
		return true
	case "space":
		l.query += " "
		return true
	default:
		if isPrintableASCIIKey(keyName) {
			l.query += keyName
			return true
		}
		return false
	}
}

// ClearQuery drops the search query.
func (l *resultList) ClearQuery() bool {
	if l.query == "" {
		return false
	}
	l.query = ""
	return true
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127
}
