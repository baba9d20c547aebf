// Package app is the entry point used by hosts that report edits.
//
// An API wires configuration, a processor and the standard handlers
// together. A host calls BeforeChange just before an edit to the watched
// range and AfterChange just after it; both are no-ops while change
// handling is disabled in configuration.
//
//	api, err := app.New(app.Options{Logger: log})
//	if err != nil {
//		return err
//	}
//	defer api.Close()
//
//	if err := api.AddDefaultHandlers(); err != nil {
//		return err
//	}
//	api.BeforeChange(ws, rng)
//	// ... edit ...
//	err = api.AfterChange(ctx, ws, rng)
package app
