package pipeline

// PageGap marks an elided run of page numbers in a pagination strip
const PageGap = -1

// maxFullStrip is the page count up to which every page number is shown
const maxFullStrip = 7

// PageNumbers returns the pagination strip for a catalog view. With at
// most seven pages every number is shown. Beyond that the strip keeps the
// first page, the last page and the pages within two of current, with
// PageGap marking each elided run.
func PageNumbers(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	if total <= maxFullStrip {
		strip := make([]int, total)
		for i := range strip {
			strip[i] = i + 1
		}
		return strip
	}

	var strip []int
	prev := 0
	for p := 1; p <= total; p++ {
		if p != 1 && p != total && abs(p-current) > 2 {
			continue
		}
		if prev != 0 && p-prev > 1 {
			strip = append(strip, PageGap)
		}
		strip = append(strip, p)
		prev = p
	}
	return strip
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
