package fql

// testColumns is the schema shared by the package tests.
var testColumns = []ColumnDef{
	{ID: "status", Name: "status", Type: TypeEnum, EnumValues: []string{"open", "closed", "pending"}},
	{ID: "price", Name: "price", Type: TypeNumber},
	{ID: "name", Name: "name", Type: TypeString},
	{ID: "active", Name: "active", Type: TypeBoolean},
	{ID: "createdAt", Name: "createdAt", Type: TypeDate},
}

func cond(column string, fn Function, args ...any) Filter {
	if args == nil {
		args = []any{}
	}
	return ConditionFilter(Condition{Column: column, Function: fn, Args: args})
}

func not(f Filter) Filter {
	f.Negate = true
	return f
}

func and(filters ...Filter) FilterGroup {
	return FilterGroup{Op: OpAnd, Filters: filters}
}

func or(filters ...Filter) FilterGroup {
	return FilterGroup{Op: OpOr, Filters: filters}
}

func group(g FilterGroup) Filter {
	return GroupFilter(g)
}
