// Package pathutil holds helpers for OpenAPI path templates and for the
// files abeye writes.
//
// [PathParamRegex] finds the {name} placeholders of a path template and
// [Segments] splits a template into literal text and placeholders, which is
// how the generator builds request URLs.
//
// [SanitizeOutputPath] validates and cleans output file paths. It resolves
// the path to an absolute one and rejects symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err // symlink detected
//	}
package pathutil
