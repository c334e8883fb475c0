package render

import "strings"

// inline tags stay on their parent's line when pretty printing.
var inline = make(map[string]bool)

func init() {
	for _, tag := range strings.Fields(`
		a abbr b bdi bdo br cite code data dfn em i kbd mark q
		rb rp rt rtc ruby s samp small span strong sub sup time u var wbr`) {
		inline[tag] = true
	}
}

func isInlineElement(tag string) bool { return inline[tag] }
