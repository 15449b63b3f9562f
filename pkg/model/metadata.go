package model

// NameMap implements a bidirectional mapping between a name and an index
type NameMap struct {
	NameToIndex map[string]int
	IndexToName map[int]string
}

func (f NameMap) Set(name string, index int) {
	f.NameToIndex[name] = index
	f.IndexToName[index] = name
}

func (f NameMap) Size() int {
	return len(f.IndexToName)
}

// ValueFor returns the index of name, adding it with the next free index if it is new.
func (f NameMap) ValueFor(name string) int {
	index, ok := f.NameToIndex[name]
	if !ok {
		index = f.Size()
		f.Set(name, index)
	}
	return index
}

func NewNameMap() NameMap {
	return NameMap{
		NameToIndex: map[string]int{},
		IndexToName: map[int]string{},
	}
}

// ColumnMap is a bidirectional mapping between a data row column index and a feature index
type ColumnMap struct {
	ColumnToIndex map[int]int
	IndexToColumn map[int]int
}

func (f ColumnMap) Set(column int, index int) {
	f.ColumnToIndex[column] = index
	f.IndexToColumn[index] = column
}

func (f ColumnMap) Size() int {
	return len(f.ColumnToIndex)
}

func (f ColumnMap) GetColumn(index int) (int, bool) {
	column, ok := f.IndexToColumn[index]
	return column, ok
}

func NewColumnMap() ColumnMap {
	return ColumnMap{
		ColumnToIndex: map[int]int{},
		IndexToColumn: map[int]int{},
	}
}

const NoColumn = -1

type Metadata struct {
	Columns []string

	// FeaturesMap maps a data row column index to a feature index
	FeaturesMap ColumnMap

	// TargetColumn points to the column in the data row that contains the class label
	TargetColumn int

	// WeightColumn points to the column holding per-sample weights, or NoColumn
	WeightColumn int

	// TargetMap contains a mapping of class names to class codes
	TargetMap NameMap

	// CategoryMaps maps the values of every feature, by feature index, to category codes
	CategoryMaps map[int]NameMap
}

func NewMetadata() *Metadata {
	return &Metadata{
		Columns:      nil,
		FeaturesMap:  NewColumnMap(),
		TargetColumn: NoColumn,
		WeightColumn: NoColumn,
		TargetMap:    NewNameMap(),
		CategoryMaps: map[int]NameMap{},
	}
}

func (d *Metadata) FeatureCount() int {
	return d.FeaturesMap.Size()
}

// FeatureName returns the header name of a feature index.
func (d *Metadata) FeatureName(index int) string {
	column, ok := d.FeaturesMap.GetColumn(index)
	if !ok || column >= len(d.Columns) {
		return ""
	}
	return d.Columns[column]
}

func (d *Metadata) TargetName() string {
	if d.TargetColumn == NoColumn {
		return ""
	}
	return d.Columns[d.TargetColumn]
}

// ParseOrAddCategoricalTarget returns the class code of value, assigning a new code
// to values not seen before.
func (d *Metadata) ParseOrAddCategoricalTarget(value string) int {
	return d.TargetMap.ValueFor(value)
}

// ParseOrAddCategory returns the category code of value for a feature, assigning a
// new code to values not seen before.
func (d *Metadata) ParseOrAddCategory(feature int, value string) int {
	categories, ok := d.CategoryMaps[feature]
	if !ok {
		categories = NewNameMap()
		d.CategoryMaps[feature] = categories
	}
	return categories.ValueFor(value)
}
