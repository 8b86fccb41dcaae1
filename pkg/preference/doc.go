// Package preference persists a visitor's language choice.
//
// Every store implements i18n.Preference. HTTP-bound stores are created per
// request by a Factory:
//
//   - Cookies keeps the code in the sysmanage-docs-language cookie.
//   - Redis keeps it under docsite:pref:<visitor-id>, with the visitor id in
//     its own cookie.
//   - Memory keeps it in process, for tests and the preview command.
package preference
