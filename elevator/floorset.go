package elevator

// FloorSet tracks which floors in [min, max] still need a visit.
// Insertion is idempotent; membership is the only state.
type FloorSet struct {
	min   int
	marks []bool
	count int
}

func NewFloorSet(min, max int) *FloorSet {
	return &FloorSet{
		min:   min,
		marks: make([]bool, max-min+1),
	}
}

func (fs *FloorSet) inRange(floor int) bool {
	idx := floor - fs.min
	return idx >= 0 && idx < len(fs.marks)
}

// Add marks a floor, reporting whether it was newly added.
func (fs *FloorSet) Add(floor int) bool {
	if !fs.inRange(floor) || fs.marks[floor-fs.min] {
		return false
	}
	fs.marks[floor-fs.min] = true
	fs.count++
	return true
}

// Remove unmarks a floor, reporting whether it was present.
func (fs *FloorSet) Remove(floor int) bool {
	if !fs.inRange(floor) || !fs.marks[floor-fs.min] {
		return false
	}
	fs.marks[floor-fs.min] = false
	fs.count--
	return true
}

func (fs *FloorSet) Contains(floor int) bool {
	return fs.inRange(floor) && fs.marks[floor-fs.min]
}

func (fs *FloorSet) Empty() bool {
	return fs.count == 0
}

// AnyAbove reports whether any marked floor lies strictly above floor.
func (fs *FloorSet) AnyAbove(floor int) bool {
	for f := floor + 1; f <= fs.min+len(fs.marks)-1; f++ {
		if fs.Contains(f) {
			return true
		}
	}
	return false
}

// AnyBelow reports whether any marked floor lies strictly below floor.
func (fs *FloorSet) AnyBelow(floor int) bool {
	for f := floor - 1; f >= fs.min; f-- {
		if fs.Contains(f) {
			return true
		}
	}
	return false
}

// Floors returns the marked floors in ascending order.
func (fs *FloorSet) Floors() []int {
	out := make([]int, 0, fs.count)
	for i, marked := range fs.marks {
		if marked {
			out = append(out, fs.min+i)
		}
	}
	return out
}

func (fs *FloorSet) Clear() {
	for i := range fs.marks {
		fs.marks[i] = false
	}
	fs.count = 0
}
