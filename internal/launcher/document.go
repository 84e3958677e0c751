package launcher

import "fmt"

// Structural edits on the in-memory tree. None of these touch disk;
// shells commit a batch of edits and then call Store.Save explicitly.

// AddSection appends a new empty section.
func (d *Document) AddSection(name string) error {
	if name == "" {
		return fmt.Errorf("section name is required")
	}
	d.Sections = append(d.Sections, Section{Name: name, Items: []Item{}})
	return nil
}

// RenameSection changes the display title of the section at i.
func (d *Document) RenameSection(i int, name string) error {
	if err := d.checkIndex("rename section", i); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("section name is required")
	}
	d.Sections[i].Name = name
	return nil
}

// RemoveSection deletes the section at i and all its items.
func (d *Document) RemoveSection(i int) error {
	if err := d.checkIndex("remove section", i); err != nil {
		return err
	}
	d.Sections = append(d.Sections[:i], d.Sections[i+1:]...)
	return nil
}

// MoveSection removes the section at from and reinserts it at to.
func (d *Document) MoveSection(from, to int) error {
	if err := d.checkIndex("move section", from); err != nil {
		return err
	}
	if err := d.checkIndex("move section", to); err != nil {
		return err
	}
	sec := d.Sections[from]
	d.Sections = append(d.Sections[:from], d.Sections[from+1:]...)
	d.Sections = append(d.Sections[:to], append([]Section{sec}, d.Sections[to:]...)...)
	return nil
}

// Section returns a pointer into the tree for item-level edits.
func (d *Document) Section(i int) (*Section, error) {
	if err := d.checkIndex("section", i); err != nil {
		return nil, err
	}
	return &d.Sections[i], nil
}

func (d *Document) checkIndex(op string, i int) error {
	if i < 0 || i >= len(d.Sections) {
		return &IndexError{Op: op, Index: i, Len: len(d.Sections)}
	}
	return nil
}

// AddItem validates item and appends it to the section.
func (s *Section) AddItem(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	s.Items = append(s.Items, item)
	return nil
}

// EditItem validates item and replaces the entry at i.
func (s *Section) EditItem(i int, item Item) error {
	if err := s.checkIndex("edit item", i); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	s.Items[i] = item
	return nil
}

// RemoveItem deletes the item at i.
func (s *Section) RemoveItem(i int) error {
	if err := s.checkIndex("remove item", i); err != nil {
		return err
	}
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
	return nil
}

// MoveItem removes the item at from and reinserts it at to.
func (s *Section) MoveItem(from, to int) error {
	if err := s.checkIndex("move item", from); err != nil {
		return err
	}
	if err := s.checkIndex("move item", to); err != nil {
		return err
	}
	item := s.Items[from]
	s.Items = append(s.Items[:from], s.Items[from+1:]...)
	s.Items = append(s.Items[:to], append([]Item{item}, s.Items[to:]...)...)
	return nil
}

func (s *Section) checkIndex(op string, i int) error {
	if i < 0 || i >= len(s.Items) {
		return &IndexError{Op: op, Index: i, Len: len(s.Items)}
	}
	return nil
}
