package course

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseCourse builds a CourseGroup from the raw XML document returned by the
// course service, validating that the requested class type and group exist.
func parseCourse(raw []byte, sigil string, classType ClassType, group int) (*CourseGroup, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse course document for %s: %w", sigil, err)
	}

	// The service answers with a lone msg_erreur element when the sigil is
	// unknown.
	if doc.Find("msg_erreur").Length() > 0 {
		return nil, &NonExistingCourseError{CourseSigil: sigil}
	}

	// Locate the schedule section for the requested class type, then the
	// group section for the requested number within it.
	label := classType.Label()
	var typeSel *goquery.Selection
	doc.Find("horaire").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if sel.AttrOr("type_cours", "") == label {
			typeSel = sel
			return false
		}
		return true
	})
	if typeSel == nil {
		return nil, &NonExistingGroupError{CourseSigil: sigil, Type: classType, Group: group}
	}

	var groupSel *goquery.Selection
	typeSel.Find("groupe_cours").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		n, err := strconv.Atoi(strings.TrimSpace(sel.AttrOr("no_groupe", "")))
		if err == nil && n == group {
			groupSel = sel
			return false
		}
		return true
	})
	if groupSel == nil {
		return nil, &NonExistingGroupError{CourseSigil: sigil, Type: classType, Group: group}
	}

	cg := &CourseGroup{Type: classType, Group: group}
	if err := loadDetails(cg, doc.Find("details").First(), sigil); err != nil {
		return nil, err
	}
	if cg.Sigil == "" {
		cg.Sigil = strings.ToUpper(sigil)
	}

	cg.Teachers = extractTeachers(groupSel)

	blocks, err := extractBlocks(groupSel, sigil)
	if err != nil {
		return nil, err
	}
	cg.Periods, err = mergePeriods(blocks)
	if err != nil {
		return nil, fmt.Errorf("course document for %s: %w", sigil, err)
	}

	return cg, nil
}

// textValue reads a scalar detail field. It returns nil when no element with
// the given tag exists, and the (possibly empty) trimmed text when one does.
func textValue(sel *goquery.Selection, tag string) *string {
	found := sel.Find(tag)
	if found.Length() == 0 {
		return nil
	}
	text := strings.TrimSpace(found.First().Text())
	return &text
}

// numericValue reads a required numeric detail field. Once a group is proven
// to exist these fields must be present, so a missing one is a hard error
// rather than a silent zero.
func numericValue(sel *goquery.Selection, tag, sigil string) (float64, error) {
	v := textValue(sel, tag)
	if v == nil {
		return 0, fmt.Errorf("course document for %s is missing required field %s", sigil, tag)
	}
	n, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return 0, fmt.Errorf("course document for %s has invalid %s value %q: %w", sigil, tag, *v, err)
	}
	return n, nil
}

func loadDetails(cg *CourseGroup, details *goquery.Selection, sigil string) error {
	if s := textValue(details, "sigle"); s != nil {
		cg.Sigil = *s
	}
	cg.Title = textValue(details, "titre")
	cg.Level = textValue(details, "cycle")

	var err error
	if cg.Credits, err = numericValue(details, "nb_credits", sigil); err != nil {
		return err
	}
	if cg.WeeklyTheoryHours, err = numericValue(details, "nb_hr_th", sigil); err != nil {
		return err
	}
	if cg.WeeklyLabHours, err = numericValue(details, "nb_hr_lab", sigil); err != nil {
		return err
	}
	if cg.WeeklyHomeworkHours, err = numericValue(details, "nb_hr_pers", sigil); err != nil {
		return err
	}

	cg.Department = textValue(details, "departement")
	cg.InCharge = textValue(details, "responsable")
	cg.Description = textValue(details, "description")
	cg.Note = textValue(details, "note")
	cg.Prerequisites = textValue(details, "prerequis")
	cg.Corequisites = textValue(details, "corequis")
	cg.DocumentationURL = textValue(details, "documentation")
	cg.WebsiteURL = textValue(details, "site_web")

	return nil
}

// extractTeachers formats each enseignant entry as "First Last". The service
// stores the given name in the last child element and the family name in the
// first, so the two are swapped for display.
func extractTeachers(group *goquery.Selection) []string {
	var teachers []string
	group.Find("enseignant").Each(func(i int, sel *goquery.Selection) {
		children := sel.Children()
		if children.Length() == 0 {
			return
		}
		given := strings.TrimSpace(children.Last().Text())
		family := strings.TrimSpace(children.First().Text())
		teachers = append(teachers, strings.TrimSpace(given+" "+family))
	})
	return teachers
}

// extractBlocks reads the group's case_horaire entries in document order.
func extractBlocks(group *goquery.Selection, sigil string) ([]rawBlock, error) {
	var blocks []rawBlock
	var blockErr error

	group.Find("case_horaire").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		pernum := strings.TrimSpace(sel.Find("pernum").First().Text())
		n, err := strconv.ParseInt(pernum, 16, 64)
		if err != nil {
			blockErr = fmt.Errorf("course document for %s has invalid period number %q: %w", sigil, pernum, err)
			return false
		}

		blocks = append(blocks, rawBlock{
			room:         strings.TrimSpace(sel.Find("local").First().Text()),
			day:          strings.TrimSpace(sel.Find("jour").First().Text()),
			parity:       strings.TrimSpace(sel.Find("parite").First().Text()),
			periodNumber: n,
			startTime:    strings.TrimSpace(sel.Find("heure").First().Text()),
		})
		return true
	})

	if blockErr != nil {
		return nil, blockErr
	}
	return blocks, nil
}
