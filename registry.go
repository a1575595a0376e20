package fieldschema

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Kind identifies a built-in validator.
type Kind int

// Built-in validator kinds. KindCustom covers names registered at runtime.
const (
	KindCustom Kind = iota
	KindEmail
	KindName
	KindAge
	KindPassword
	KindJSON
	KindPhone
	KindZipcode
	KindDate
	KindCreditCard
	KindSSN
	KindURL
	KindIPAddress
	KindHexColor
	KindLatitude
	KindLongitude
	KindFile
	KindConfirmPassword
	KindCheckUnique
	KindCheckNull
	KindCheckExistence
	KindCheckRange
	KindCheckType
	KindCheckEnum
	KindCheckLength
	KindLanguage
	kindCount
)

type kindEntry struct {
	name    string
	factory Factory
}

var kinds = [kindCount]kindEntry{
	KindCustom:          {name: "custom"},
	KindEmail:           {"email", newEmail},
	KindName:            {"name", newName},
	KindAge:             {"age", newAge},
	KindPassword:        {"password", newPassword},
	KindJSON:            {"json", newJSON},
	KindPhone:           {"phone", newPhone},
	KindZipcode:         {"zipcode", newZipcode},
	KindDate:            {"date", newDate},
	KindCreditCard:      {"credit_card", newCreditCard},
	KindSSN:             {"ssn", newSSN},
	KindURL:             {"url", newURL},
	KindIPAddress:       {"ip_address", newIPAddress},
	KindHexColor:        {"hex_color", newHexColor},
	KindLatitude:        {"latitude", newLatitude},
	KindLongitude:       {"longitude", newLongitude},
	KindFile:            {"file", newFile},
	KindConfirmPassword: {"confirm_password", newConfirmPassword},
	KindCheckUnique:     {"check_unique", newCheckUnique},
	KindCheckNull:       {"check_null", newCheckNull},
	KindCheckExistence:  {"check_existence", newCheckExistence},
	KindCheckRange:      {"check_range", newCheckRange},
	KindCheckType:       {"check_type", newCheckType},
	KindCheckEnum:       {"check_enum", newCheckEnum},
	KindCheckLength:     {"check_length", newCheckLength},
	KindLanguage:        {"language", newLanguage},
}

// aliases maps every accepted rule name to its kind, including the
// alternative spellings schema documents use.
var aliases = func() map[string]Kind {
	m := map[string]Kind{
		"min_age":           KindAge,
		"max_age":           KindAge,
		"validate_language": KindLanguage,
		"confirm":           KindConfirmPassword,
		"unique":            KindCheckUnique,
	}
	for k := Kind(1); k < kindCount; k++ {
		m[kinds[k].name] = k
	}
	return m
}()

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

// KindOf resolves a rule name through the alias table. Names that are not
// built in resolve to KindCustom.
func KindOf(name string) Kind {
	return aliases[name]
}

// ErrReservedName is returned when registering a name that a built-in
// validator or alias already uses.
var ErrReservedName = errors.New("validator name is reserved")

// Registry resolves rule names to validator factories. Built-ins are always
// present; custom validators must be registered before schemas that use them
// are built.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]Factory
}

// NewRegistry returns a registry holding only the built-in validators.
func NewRegistry() *Registry {
	return &Registry{custom: map[string]Factory{}}
}

var defaultRegistry = NewRegistry()

// Register adds a custom validator to the default registry.
func Register(name string, f Factory) error {
	return defaultRegistry.Register(name, f)
}

// Register adds a custom validator under name. Registering the same name twice
// replaces the earlier factory.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("%w: empty name or nil factory", ErrInvalidArguments)
	}
	if _, ok := aliases[name]; ok {
		return fmt.Errorf("%w: %s", ErrReservedName, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[name] = f
	return nil
}

// RegisterFunc registers a predicate that takes no arguments.
func (r *Registry) RegisterFunc(name string, fn Func) error {
	return r.Register(name, func(a Args) (Validator, error) {
		if err := a.Expect(0); err != nil {
			return nil, err
		}
		return fn, nil
	})
}

// Names returns the registered custom validator names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.custom))
	for k := range r.custom {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (r *Registry) resolve(name string) (Kind, Factory, bool) {
	if k, ok := aliases[name]; ok {
		return k, kinds[k].factory, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.custom[name]
	return KindCustom, f, ok
}
