package export

import "reflect"

// Contract identifies a service contract. Contracts derived from Go types use
// the type's import path and name.
type Contract string

// ContractOf returns the contract identifier for T.
func ContractOf[T any]() Contract {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.PkgPath() == "" || t.Name() == "" {
		return Contract(t.String())
	}
	return Contract(t.PkgPath() + "." + t.Name())
}

func (c Contract) String() string {
	return string(c)
}
