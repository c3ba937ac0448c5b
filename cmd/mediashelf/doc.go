// Command mediashelf imports books, movies, and music from Douban subject
// pages into a local SQLite catalog.
//
// Common invocations:
//
//	mediashelf search "叶惠美" --type music
//	mediashelf import music 1394371 --status listened --save
//	mediashelf list book
//	mediashelf serve
//
// Every command accepts --config to point at a TOML file; a .env file in the
// working directory is loaded first so secrets such as MEDIASHELF_DOUBAN_COOKIE
// need not live in the config.
package main
