package obstacles

// RemoveContained drops rectangles that lie fully inside another one and
// returns the rest in their original order. Of two identical rectangles the
// first is kept. Empty rectangles are dropped as well.
func RemoveContained(rects []Rect) []Rect {
	result := make([]Rect, 0, len(rects))
	contained := make([]bool, len(rects))

	// Check each rectangle against all others
	for i := range rects {
		if contained[i] {
			continue
		}
		if rects[i].Empty() {
			contained[i] = true
			continue
		}
		for j := range rects {
			if i == j || contained[j] || rects[j].Empty() {
				continue
			}
			if rects[i] == rects[j] {
				// keep the earlier duplicate
				if j < i {
					contained[i] = true
					break
				}
				contained[j] = true
				continue
			}
			if rects[i].Within(rects[j]) {
				contained[i] = true
				break
			}
			if rects[j].Within(rects[i]) {
				contained[j] = true
			}
		}
	}

	for i, r := range rects {
		if !contained[i] {
			result = append(result, r)
		}
	}
	return result
}
