// Package gormapply translates a lowering.Plan into a *gorm.DB query: the
// one concrete realization of the backend adapter the core deliberately
// leaves abstract. It reuses the teacher's dialect-aware identifier quoting
// (originally internal/query/apply_filter.go's quoteIdent/getDatabaseDialect)
// so the same Plan renders correct SQL on sqlite, postgres, mysql, or
// sqlserver.
package gormapply

import (
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-core/internal/filter"
	"github.com/nlstn/go-odata-core/internal/lowering"
	"github.com/nlstn/go-odata-core/internal/resource"
	"gorm.io/gorm"
)

// Apply renders plan against db: WHERE from the predicate tree, ORDER BY,
// LIMIT, and OFFSET. A nil Predicate leaves the WHERE clause untouched.
func Apply(db *gorm.DB, plan *lowering.Plan) *gorm.DB {
	dialect := dialectName(db)

	if plan.Predicate != nil {
		clause, args := render(dialect, plan.Predicate)
		db = db.Where(clause, args...)
	}

	for _, o := range plan.OrderBy {
		dir := "ASC"
		if o.Direction == resource.Desc {
			dir = "DESC"
		}
		db = db.Order(fmt.Sprintf("%s %s", quoteIdent(dialect, o.Column), dir))
	}

	if plan.Limit != nil {
		db = db.Limit(*plan.Limit)
	}
	if plan.Offset != nil {
		db = db.Offset(*plan.Offset)
	}

	return db
}

func dialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	return db.Dialector.Name()
}

// quoteIdent quotes a column/table identifier per dialect convention,
// escaping embedded quote characters by doubling them.
func quoteIdent(dialect, ident string) string {
	if ident == "" {
		return ident
	}
	switch dialect {
	case "mysql":
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	case "sqlserver", "mssql":
		return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
	default: // postgres, sqlite, and the SQL-standard default
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
}

// render walks a predicate tree into a parameterized SQL fragment and its
// bind arguments.
func render(dialect string, p lowering.Predicate) (string, []any) {
	switch v := p.(type) {
	case lowering.AllOf:
		return joinPredicates(dialect, v.Predicates, " AND ")
	case lowering.AnyOf:
		return joinPredicates(dialect, v.Predicates, " OR ")
	case lowering.Not:
		clause, args := render(dialect, v.Predicate)
		return "NOT (" + clause + ")", args
	case lowering.Comparison:
		return fmt.Sprintf("%s %s ?", quoteIdent(dialect, v.Column), sqlOperator(v.Op)), []any{nativeValue(v.Value)}
	case lowering.IsNull:
		return quoteIdent(dialect, v.Column) + " IS NULL", nil
	case lowering.IsNotNull:
		return quoteIdent(dialect, v.Column) + " IS NOT NULL", nil
	case lowering.In:
		placeholders := make([]string, len(v.Values))
		args := make([]any, len(v.Values))
		for i, val := range v.Values {
			placeholders[i] = "?"
			args[i] = nativeValue(val)
		}
		return fmt.Sprintf("%s IN (%s)", quoteIdent(dialect, v.Column), strings.Join(placeholders, ", ")), args
	case lowering.Search:
		return renderSearch(dialect, v)
	default:
		return "1=1", nil
	}
}

func joinPredicates(dialect string, preds []lowering.Predicate, sep string) (string, []any) {
	clauses := make([]string, 0, len(preds))
	var args []any
	for _, p := range preds {
		c, a := render(dialect, p)
		clauses = append(clauses, "("+c+")")
		args = append(args, a...)
	}
	return strings.Join(clauses, sep), args
}

// renderSearch builds the cross-column $search predicate. The term arrives
// already Unicode-folded (ParseURL applies filter.FoldCase); LOWER() on the
// column side is a best-effort ASCII-range fold a dialect's collation may
// extend, not a guarantee of matching Unicode semantics.
func renderSearch(dialect string, s lowering.Search) (string, []any) {
	clauses := make([]string, 0, len(s.Columns))
	args := make([]any, 0, len(s.Columns))
	term := "%" + filter.FoldCase(s.Term) + "%"
	for _, col := range s.Columns {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", quoteIdent(dialect, col)))
		args = append(args, term)
	}
	return strings.Join(clauses, " OR "), args
}

// nativeValue converts a resolved resource.Value into a driver-bindable Go
// value. By the time a predicate reaches here, lowering has already resolved
// any QueryOptionValue against its sibling parameter, so that variant never
// appears.
func nativeValue(v resource.Value) any {
	switch val := v.(type) {
	case resource.NullValue:
		return nil
	case resource.StringValue:
		return string(val)
	case resource.IntegerValue:
		return int64(val)
	case resource.DecimalValue:
		f, _ := val.Decimal.Float64()
		return f
	case resource.BooleanValue:
		return bool(val)
	default:
		return v.String()
	}
}

func sqlOperator(op lowering.ComparisonOp) string {
	switch op {
	case lowering.OpEq:
		return "="
	case lowering.OpNe:
		return "<>"
	case lowering.OpGt:
		return ">"
	case lowering.OpGe:
		return ">="
	case lowering.OpLt:
		return "<"
	case lowering.OpLe:
		return "<="
	default:
		return "="
	}
}
