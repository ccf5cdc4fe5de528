// Package document models a single post and the token pipeline that turns
// its raw fields into full tokens, sense tokens, senses and stems.
//
// Which raw fields feed each derivation is chosen by a Config. A process
// wide default can be installed once with SetDefaultConfig; every
// document keeps the Config it was built with.
package document
