package config

// DefaultAlphabets is written to a fresh alphabets table.
const DefaultAlphabets = `# name,ranges,module,arg,language,voice,punctuation_mode,pitch,capitals_pitch,rate,volume,sandbox
#
# ranges is a space separated list of uSTART-uEND code point pairs, decimal
# or 0x hex. Use * for the engine that speaks everything else.
latin,*,/usr/lib/speech-dispatcher-modules/sd_espeak-ng,/etc/speech-dispatcher/modules/espeak-ng.conf,en,male1,some,10,50,2,100,no
chinese,u0x4E00-u0x9FA5,/usr/lib/speech-dispatcher-modules/sd_espeak-ng,/etc/speech-dispatcher/modules/espeak-ng.conf,cmn,male1,some,10,50,2,100,no
cyrillic,u0x400-u0x52F,/usr/lib/speech-dispatcher-modules/sd_espeak-ng,/etc/speech-dispatcher/modules/espeak-ng.conf,ru,male1,some,10,50,2,100,no
`

// DefaultSettings is written to a fresh settings file.
const DefaultSettings = `# characters that never switch engines
punctuation_characters: ,.?，。？- :()
`

// DefaultOptionsFile is written to a fresh options file.
const DefaultOptionsFile = `# number of goroutines reading engine output
reader_pool_size: 2
# wrapper for engines marked as sandboxed
sandbox_command: "firejail"
# reload alphabets_settings.csv and settings.conf when they change
watch: true
# log at debug level
debug: false
`
