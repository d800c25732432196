// Package production loads the Volve production workbook and reshapes it for
// the dashboard.
//
// A WorkbookLoader reads the first (or configured) sheet of an .xlsx file into
// a Table of raw cell text and checks that the expected columns are present.
// Transform then derives the Year column from DATEPRD, renames the bore
// columns to their short codes and builds the typed record view used by the
// totals and series aggregations.
//
// Tables are never modified in place. Every transformation returns a new
// Table so a loaded dataset can be shared between requests without locking.
package production
