// handlers/markup.go
package handlers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boxParts are the elements every satellite box must contain.
var boxParts = []string{".see-more-btn", ".more-details-btn", ".data-section", ".more-data-section"}

// VerifyMarkup checks a rendered page against the elements the box controller
// drives: boxes satellite boxes, each with both toggle buttons, both panels and
// a wave indicator #wave<n>, plus one #overlay.
func VerifyMarkup(page []byte, boxes int) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return fmt.Errorf("failed to parse rendered page: %w", err)
	}

	var problems []string
	sel := doc.Find(".sat-box")
	if sel.Length() != boxes {
		problems = append(problems, fmt.Sprintf("found %d .sat-box elements, want %d", sel.Length(), boxes))
	}
	sel.Each(func(i int, box *goquery.Selection) {
		for _, part := range boxParts {
			if n := box.Find(part).Length(); n != 1 {
				problems = append(problems, fmt.Sprintf("box %d has %d %s elements", i+1, n, part))
			}
		}
	})
	for n := 1; n <= boxes; n++ {
		if doc.Find(fmt.Sprintf("#wave%d", n)).Length() != 1 {
			problems = append(problems, fmt.Sprintf("missing #wave%d", n))
		}
	}
	if doc.Find("#overlay").Length() != 1 {
		problems = append(problems, "missing #overlay")
	}

	if len(problems) > 0 {
		return fmt.Errorf("dashboard markup: %s", strings.Join(problems, "; "))
	}
	return nil
}
