package fakes

import "strings"

var keyReplacer = strings.NewReplacer("/", "_", ".", "_", "-", "_")

// HandlerKey derives the handler key for a request.
//
// The query string is dropped, leading and trailing slashes are trimmed and
// every '/', '.' and '-' becomes '_'. The lower-cased method is prepended:
//
//	HandlerKey("DELETE", "/servers/1234/ips/public/1.2.3.4") == "delete_servers_1234_ips_public_1_2_3_4"
//
// Distinct paths may collide (for example "/a-b" and "/a/b"); the table
// rejects such collisions when it is built.
func HandlerKey(method, rawURL string) string {
	path := rawURL
	if i := strings.LastIndex(path, "?"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	return strings.ToLower(method) + "_" + keyReplacer.Replace(path)
}
