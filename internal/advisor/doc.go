// Package advisor turns a user photo into style suggestions.
//
// The Analyzer boundary treats the vision service as an opaque remote
// function: image bytes and a prompt in, suggestion text or an error out.
// Prompt construction and image preparation live here; session guards and
// message rendering do not.
package advisor
