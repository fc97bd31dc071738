package cmd

import (
	"asciitree/pkg/tree"
)

const sortKeyTypeName = "key"

// sortKeyValue is a pflag.Value restricted to the tree sort key names.
type sortKeyValue struct {
	target *tree.SortKey
}

func newSortKeyValue(target *tree.SortKey) *sortKeyValue {
	return &sortKeyValue{target: target}
}

func (value *sortKeyValue) Set(input string) error {
	key, err := tree.ParseSortKey(input)
	if err != nil {
		return err
	}
	*value.target = key
	return nil
}

func (value *sortKeyValue) String() string {
	if value == nil || value.target == nil {
		return tree.SortByName.String()
	}
	return value.target.String()
}

func (value *sortKeyValue) Type() string {
	return sortKeyTypeName
}
