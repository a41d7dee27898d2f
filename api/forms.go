package api

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxUploadMemory bounds how much of a multipart body is buffered in memory.
const maxUploadMemory = 10 << 20

var validate = validator.New()

// createPortfolioForm carries the creation inputs. Name, describeYou,
// description, contact and language are mandatory; a missing one redirects
// back to the form with no partial write.
type createPortfolioForm struct {
	Name        string `validate:"required"`
	DescribeYou string `validate:"required"`
	Description string `validate:"required"`
	Contact     string `validate:"required"`
	Gmail       string
	Address     string
	Course      string
	Institute   string
	Skill       string
	Interest    string
	Language    string `validate:"required"`
}

// updatePortfolioForm mirrors creation but only name and description remain
// mandatory.
type updatePortfolioForm struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	DescribeYou string
	Contact     string
	Gmail       string
	Address     string
	Course      string
	Institute   string
	Skill       string
	Interest    string
	Language    string
	// hasDescribeYou distinguishes "field absent" from "field blank" for the
	// optional scalar.
	hasDescribeYou bool
}

func parseCreateForm(r *http.Request) (createPortfolioForm, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && err != http.ErrNotMultipart {
		return createPortfolioForm{}, err
	}
	form := createPortfolioForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		DescribeYou: strings.TrimSpace(r.FormValue("describeYou")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Contact:     strings.TrimSpace(r.FormValue("contact")),
		Gmail:       strings.TrimSpace(r.FormValue("gmail")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		Course:      strings.TrimSpace(r.FormValue("course")),
		Institute:   strings.TrimSpace(r.FormValue("institute")),
		Skill:       strings.TrimSpace(r.FormValue("skill")),
		Interest:    strings.TrimSpace(r.FormValue("interest")),
		Language:    strings.TrimSpace(r.FormValue("language")),
	}
	return form, validate.Struct(form)
}

func parseUpdateForm(r *http.Request) (updatePortfolioForm, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && err != http.ErrNotMultipart {
		return updatePortfolioForm{}, err
	}
	form := updatePortfolioForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		DescribeYou: strings.TrimSpace(r.FormValue("describeYou")),
		Contact:     strings.TrimSpace(r.FormValue("contact")),
		Gmail:       strings.TrimSpace(r.FormValue("gmail")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		Course:      strings.TrimSpace(r.FormValue("course")),
		Institute:   strings.TrimSpace(r.FormValue("institute")),
		Skill:       strings.TrimSpace(r.FormValue("skill")),
		Interest:    strings.TrimSpace(r.FormValue("interest")),
		Language:    strings.TrimSpace(r.FormValue("language")),
	}
	_, form.hasDescribeYou = formHas(r, "describeYou")
	return form, validate.Struct(form)
}

// formHas reports whether the field was submitted at all, blank or not.
func formHas(r *http.Request, field string) (string, bool) {
	if r.MultipartForm != nil {
		if vs, ok := r.MultipartForm.Value[field]; ok && len(vs) > 0 {
			return vs[0], true
		}
	}
	if vs, ok := r.PostForm[field]; ok && len(vs) > 0 {
		return vs[0], true
	}
	return "", false
}

// splitCSV splits a comma-separated list into trimmed, non-empty, unique
// values. Duplicates would trip the per-portfolio unique index on insert.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}
