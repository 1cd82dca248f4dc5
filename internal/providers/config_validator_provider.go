package providers

import (
	"fmt"
	"strings"

	"github.com/gookit/validate"

	"swtd/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	v.AddValidator("unixPath", func(val interface{}) bool {
		s, ok := val.(string)
		return ok && strings.HasPrefix(s, "/")
	})

	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.One())
	}
	return nil
}
