/*
* Loads commit records from the headerless CSV produced by `git log`.
*
* Each line has five columns: hash, author name, author email, author date and
* subject. Rows missing any of these are dropped.
 */
package commitlog

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sinclairtarget/git-corp/internal/format"
)

const numColumns = 5
const maxLoggedSubject = 40

type Record struct {
	Hash    string    `validate:"required"`
	Name    string    `validate:"required"`
	Email   string    `validate:"required"`
	Date    time.Time `validate:"required"`
	Subject string    `validate:"required"`
}

func (r Record) String() string {
	return fmt.Sprintf(
		"{ hash:%s author:%s <%s> date:%s subject:%s }",
		r.Hash,
		r.Name,
		r.Email,
		r.Date.Format(time.RFC3339),
		format.Abbrev(r.Subject, maxLoggedSubject),
	)
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Complete reports whether every field of the record has a value.
func (r Record) Complete() bool {
	return validate.Struct(r) == nil
}
