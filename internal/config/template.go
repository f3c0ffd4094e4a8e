package config

// DefaultTOML is written by "vesszo init".
const DefaultTOML = `# vesszo configuration

[check]
threshold = 0.30         # findings must be more confident than this
format = "plain"         # plain|pretty|json|sarif|short
sort = false
max_diagnostics = 1000
# detectors = ["naive", "forward", "pair", "typical"]
# fail_on = "warning"

[rules]
delimiter = ";"
cache = true
# empty: embedded default, "-": detector disabled
naive = "rules/naive.csv"
forward = "rules/naive_forward.csv"
pair = "rules/pair.csv"
typical = "rules/typical.csv"

[rules.case_sensitive]
naive = true
forward = false

# [rules.templates]
# naive = 'a(z) "{word}" szó elé általában vesszőt teszünk.'
`
