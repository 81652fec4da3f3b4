// Package middleware holds the fiber middleware installed by the start command.
//
//   - rayid: stamps every request with an id, echoed in the response header and
//     attached to request logs.
//   - auth: rejects requests without the configured API key. /swagger is skipped.
package middleware
