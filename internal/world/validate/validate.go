// Package validate checks world definitions before they reach the rules
// engine. Validation is two-layered: structural checks declared as struct
// tags, then business rules evaluated per circuit. All findings are
// collected so a single pass reports everything wrong with a document.
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	gferrors "github.com/louisbranch/gridfall/internal/errors"
	"github.com/louisbranch/gridfall/internal/world"
)

// minFailDie and maxFailDie bound the legal fail-die sizes.
const (
	minFailDie = 3
	maxFailDie = 20
)

// Error describes one validation finding.
type Error struct {
	Path    string        `json:"path"`
	Code    gferrors.Code `json:"code"`
	Message string        `json:"message"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Path, e.Message, e.Code)
}

var structural = newStructuralValidator()

func newStructuralValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Document validates a decoded world definition. It returns nil when the
// definition is valid, otherwise every structural and business-rule finding.
func Document(def world.Definition) []Error {
	var errs []Error
	errs = append(errs, structuralErrors(def)...)
	errs = append(errs, businessErrors(def)...)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Bytes decodes and validates a raw world definition document.
func Bytes(data []byte) (world.Definition, []Error) {
	def, err := world.Decode(data)
	if err != nil {
		return world.Definition{}, []Error{{
			Path:    "",
			Code:    gferrors.CodeWorldSchemaInvalid,
			Message: err.Error(),
		}}
	}
	if errs := Document(def); len(errs) > 0 {
		return world.Definition{}, errs
	}
	return def, nil
}

func structuralErrors(def world.Definition) []Error {
	err := structural.Struct(def)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Error{{
			Path:    "",
			Code:    gferrors.CodeWorldSchemaInvalid,
			Message: err.Error(),
		}}
	}

	errs := make([]Error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, Error{
			Path:    namespacePath(fe.Namespace()),
			Code:    gferrors.CodeWorldSchemaInvalid,
			Message: structuralMessage(fe),
		})
	}
	return errs
}

// namespacePath strips the root struct name from a validator namespace,
// leaving a document path like circuits[0].nodes[1].id.
func namespacePath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func structuralMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must have at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

func businessErrors(def world.Definition) []Error {
	var errs []Error

	seenCircuits := map[string]bool{}
	for ci, circuit := range def.Circuits {
		circuitPath := fmt.Sprintf("circuits[%d]", ci)

		if circuit.ID != "" {
			if seenCircuits[circuit.ID] {
				errs = append(errs, Error{
					Path:    circuitPath + ".id",
					Code:    gferrors.CodeWorldCircuitIDDuplicate,
					Message: fmt.Sprintf("circuit id %q is already used", circuit.ID),
				})
			}
			seenCircuits[circuit.ID] = true
		}

		errs = append(errs, circuitErrors(circuit, circuitPath)...)
	}

	return errs
}

func circuitErrors(circuit world.Circuit, circuitPath string) []Error {
	var errs []Error

	if _, ok := circuit.EntryNode(); !ok {
		errs = append(errs, Error{
			Path:    circuitPath + ".nodes",
			Code:    gferrors.CodeWorldNoEntryNode,
			Message: "circuit needs at least one entry node (level 0)",
		})
	}

	finalCount := 0
	seenNodes := map[string]bool{}
	for ni, node := range circuit.Nodes {
		nodePath := fmt.Sprintf("%s.nodes[%d]", circuitPath, ni)

		if node.ID != "" {
			if seenNodes[node.ID] {
				errs = append(errs, Error{
					Path:    nodePath + ".id",
					Code:    gferrors.CodeWorldNodeIDDuplicate,
					Message: fmt.Sprintf("node id %q is already used in this circuit", node.ID),
				})
			}
			seenNodes[node.ID] = true
		}

		if node.IsFinal {
			finalCount++
			if finalCount > 1 {
				errs = append(errs, Error{
					Path:    nodePath + ".isFinal",
					Code:    gferrors.CodeWorldMultipleFinalNodes,
					Message: "circuit may designate at most one final node",
				})
			}
		}

		if node.FailDie < minFailDie || node.FailDie > maxFailDie {
			errs = append(errs, Error{
				Path:    nodePath + ".failDie",
				Code:    gferrors.CodeWorldFailDieOutOfRange,
				Message: fmt.Sprintf("fail die must be between %d and %d", minFailDie, maxFailDie),
			})
		}
	}

	seenLinks := map[string]bool{}
	for li, link := range circuit.Links {
		linkPath := fmt.Sprintf("%s.links[%d]", circuitPath, li)

		if link.ID != "" {
			if seenLinks[link.ID] {
				errs = append(errs, Error{
					Path:    linkPath + ".id",
					Code:    gferrors.CodeWorldLinkIDDuplicate,
					Message: fmt.Sprintf("link id %q is already used in this circuit", link.ID),
				})
			}
			seenLinks[link.ID] = true
		}

		if link.From != "" && !seenNodes[link.From] {
			errs = append(errs, Error{
				Path:    linkPath + ".from",
				Code:    gferrors.CodeWorldLinkOrphanEndpoint,
				Message: fmt.Sprintf("link references unknown node %q", link.From),
			})
		}
		if link.To != "" && !seenNodes[link.To] {
			errs = append(errs, Error{
				Path:    linkPath + ".to",
				Code:    gferrors.CodeWorldLinkOrphanEndpoint,
				Message: fmt.Sprintf("link references unknown node %q", link.To),
			})
		}
		if link.From != "" && link.From == link.To {
			errs = append(errs, Error{
				Path:    linkPath,
				Code:    gferrors.CodeWorldLinkSelfLoop,
				Message: "link endpoints must differ",
			})
		}
	}

	return errs
}
