// Package shared holds helpers used across packages of the dashboard.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and excelize-backed fixtures that write small production
// workbooks into a test's temporary directory:
//
//	path := testutil.WriteWorkbook(t, "", testutil.VolveRows())
//	table, err := production.NewWorkbookLoader(path, "", logger).Load(ctx)
package shared
