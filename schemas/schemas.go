// Package schemas embeds the connector connection schema documents
// shipped with the catalog.
package schemas

import "embed"

// FS embeds all *Connection.json schema documents. The catalog registry
// loads every document in this filesystem at startup.
//
//go:embed *.json
var FS embed.FS
