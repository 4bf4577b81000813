package lexer

// KeywordKind enumerates the closed keyword set (spec §3). Spellings range
// from single words (where, let) to dotted/hyphenated/underscored/bang-
// prefixed multi-byte forms (hint.strategy, materialized-view-combine,
// restricted_view_access, contains_cs, !in). The table below is organized
// by first byte, then by decreasing spelling length, so the longest match
// at a given position is always found first (spec §4.7).
type KeywordKind uint16

const (
	And KeywordKind = iota
	Or
	Not
	Let
	Where
	Project
	ProjectAway
	ProjectKeep
	ProjectRename
	ProjectReorder
	Extend
	Summarize
	By
	Join
	On
	Kind
	As
	Asc
	Desc
	Null
	Print
	Order
	Sort
	Top
	TopNested
	Take
	Limit
	Distinct
	Union
	Range
	Case
	Evaluate
	Invoke
	Lookup
	Facet
	Find
	Parse
	ParseWhere
	ParseKv
	Render
	Sample
	SampleDistinct
	Search
	Serialize
	Consume
	Fork
	Scan
	MvExpand
	MvApply
	MakeSeries
	Reduce
	Pack
	Declare
	Query
	External
	ExternalData
	Database
	Table
	Tables
	DataTable
	Set
	With
	Step
	Of
	Missing

	Contains
	NotContains
	ContainsCs
	NotContainsCs
	Has
	NotHas
	HasCs
	NotHasCs
	HasAny
	HasAll
	HasPrefix
	NotHasPrefix
	HasPrefixCs
	NotHasPrefixCs
	HasSuffix
	NotHasSuffix
	HasSuffixCs
	NotHasSuffixCs
	StartsWith
	NotStartsWith
	StartsWithCs
	NotStartsWithCs
	EndsWith
	NotEndsWith
	EndsWithCs
	NotEndsWithCs
	Like
	NotLike
	LikeCs
	NotLikeCs
	MatchesRegex
	In
	NotIn
	InCs
	NotInCs
	InTilde
	Between
	NotBetween

	Bool
	IntKw
	Int32
	LongKw
	Int64
	RealKw
	Double
	DecimalKw
	StringKw
	DateTimeKw
	Date
	Time
	TimespanKw
	GuidKw
	Dynamic

	HintDotStrategy
	HintDotRemote
	HintDotDistribution
	HintDotShuffleKey
	HintDotNumPartitions
	HintDotConcurrency
	HintDotSpread
	HintDotProgressiveTop
	HintDotMaterialized

	MaterializedViewCombine
	RestrictedViewAccess
	NoOptimization
	BestEffort
	ForceRemote
)

// extendedIdentifierSpelling lists the closed subset of keywords permitted
// to stand in for a bare identifier in name-declaration position
// (spec §4.10 "Extended-keyword-as-identifier").
var extendedIdentifierSpelling = map[KeywordKind]string{
	Where:    "where",
	By:       "by",
	On:       "on",
	As:       "as",
	Kind:     "kind",
	Set:      "set",
	Step:     "step",
	Database: "database",
	Table:    "table",
	Asc:      "asc",
	Desc:     "desc",
	Join:     "join",
	Print:    "print",
	With:     "with",
	Of:       "of",
}

// ExtendedIdentifierSpelling returns the identifier spelling for a keyword
// permitted in name-declaration contexts, and whether kw is such a keyword.
func ExtendedIdentifierSpelling(kw KeywordKind) (string, bool) {
	s, ok := extendedIdentifierSpelling[kw]
	return s, ok
}

// gooLiteralKind maps a goo-capable type keyword to the literal sub-kind its
// constructor-call form produces (spec §4.7).
var gooLiteralKind = map[KeywordKind]LiteralKind{
	Bool:       Boolean,
	DateTimeKw: DateTime,
	Date:       DateTime,
	DecimalKw:  Decimal,
	GuidKw:     Guid,
	IntKw:      Int,
	Int32:      Int,
	LongKw:     Long,
	Int64:      Long,
	RealKw:     Real,
	Double:     Real,
	Time:       Timespan,
	TimespanKw: Timespan,
}

// GooLiteralKind reports the literal kind produced when kw is immediately
// followed by a parenthesized body, and whether kw is goo-capable at all.
func GooLiteralKind(kw KeywordKind) (LiteralKind, bool) {
	k, ok := gooLiteralKind[kw]
	return k, ok
}

type kwEntry struct {
	word string
	kind KeywordKind
}

var keywordSpellings = []kwEntry{
	{"and", And},
	{"or", Or},
	{"not", Not},
	{"let", Let},
	{"where", Where},
	{"project-away", ProjectAway},
	{"project-keep", ProjectKeep},
	{"project-rename", ProjectRename},
	{"project-reorder", ProjectReorder},
	{"project", Project},
	{"extend", Extend},
	{"summarize", Summarize},
	{"by", By},
	{"join", Join},
	{"on", On},
	{"kind", Kind},
	{"as", As},
	{"asc", Asc},
	{"desc", Desc},
	{"null", Null},
	{"print", Print},
	{"order", Order},
	{"sort", Sort},
	{"top-nested", TopNested},
	{"top", Top},
	{"take", Take},
	{"limit", Limit},
	{"distinct", Distinct},
	{"union", Union},
	{"range", Range},
	{"case", Case},
	{"evaluate", Evaluate},
	{"invoke", Invoke},
	{"lookup", Lookup},
	{"facet", Facet},
	{"find", Find},
	{"parse-where", ParseWhere},
	{"parse-kv", ParseKv},
	{"parse", Parse},
	{"render", Render},
	{"sample-distinct", SampleDistinct},
	{"sample", Sample},
	{"search", Search},
	{"serialize", Serialize},
	{"consume", Consume},
	{"fork", Fork},
	{"scan", Scan},
	{"mv-expand", MvExpand},
	{"mv-apply", MvApply},
	{"make-series", MakeSeries},
	{"reduce", Reduce},
	{"pack", Pack},
	{"declare", Declare},
	{"query", Query},
	{"external_data", ExternalData},
	{"external", External},
	{"database", Database},
	{"tables", Tables},
	{"table", Table},
	{"datatable", DataTable},
	{"set", Set},
	{"with", With},
	{"step", Step},
	{"of", Of},
	{"missing", Missing},

	{"!contains_cs", NotContainsCs},
	{"contains_cs", ContainsCs},
	{"!contains", NotContains},
	{"contains", Contains},
	{"!has_cs", NotHasCs},
	{"has_cs", HasCs},
	{"has_any", HasAny},
	{"has_all", HasAll},
	{"!hasprefix_cs", NotHasPrefixCs},
	{"hasprefix_cs", HasPrefixCs},
	{"!hasprefix", NotHasPrefix},
	{"hasprefix", HasPrefix},
	{"!hassuffix_cs", NotHasSuffixCs},
	{"hassuffix_cs", HasSuffixCs},
	{"!hassuffix", NotHasSuffix},
	{"hassuffix", HasSuffix},
	{"!has", NotHas},
	{"has", Has},
	{"!startswith_cs", NotStartsWithCs},
	{"startswith_cs", StartsWithCs},
	{"!startswith", NotStartsWith},
	{"startswith", StartsWith},
	{"!endswith_cs", NotEndsWithCs},
	{"endswith_cs", EndsWithCs},
	{"!endswith", NotEndsWith},
	{"endswith", EndsWith},
	{"!like_cs", NotLikeCs},
	{"like_cs", LikeCs},
	{"!like", NotLike},
	{"like", Like},
	{"matches regex", MatchesRegex},
	{"!in_cs", NotInCs},
	{"in_cs", InCs},
	{"!in", NotIn},
	{"in~", InTilde},
	{"in", In},
	{"!between", NotBetween},
	{"between", Between},

	{"bool", Bool},
	{"boolean", Bool},
	{"int32", Int32},
	{"int64", Int64},
	{"int", IntKw},
	{"long", LongKw},
	{"real", RealKw},
	{"double", Double},
	{"decimal", DecimalKw},
	{"string", StringKw},
	{"datetime", DateTimeKw},
	{"date", Date},
	{"time", Time},
	{"timespan", TimespanKw},
	{"guid", GuidKw},
	{"dynamic", Dynamic},

	{"hint.strategy", HintDotStrategy},
	{"hint.remote", HintDotRemote},
	{"hint.distribution", HintDotDistribution},
	{"hint.shufflekey", HintDotShuffleKey},
	{"hint.num_partitions", HintDotNumPartitions},
	{"hint.concurrency", HintDotConcurrency},
	{"hint.spread", HintDotSpread},
	{"hint.progressive_top", HintDotProgressiveTop},
	{"hint.materialized", HintDotMaterialized},

	{"materialized-view-combine", MaterializedViewCombine},
	{"restricted_view_access", RestrictedViewAccess},
	{"noopt", NoOptimization},
	{"noop", NoOptimization},
	{"besteffort", BestEffort},
	{"forceremote", ForceRemote},
}

// keywordsByFirstByte buckets keywordSpellings by their first source byte
// and sorts each bucket by decreasing spelling length, so the first match
// found scanning a bucket in order is the longest (spec §4.7).
var keywordsByFirstByte [256][]kwEntry

func init() {
	for _, e := range keywordSpellings {
		b := e.word[0]
		keywordsByFirstByte[b] = append(keywordsByFirstByte[b], e)
	}
	for b := range keywordsByFirstByte {
		bucket := keywordsByFirstByte[b]
		for i := 1; i < len(bucket); i++ {
			j := i
			for j > 0 && len(bucket[j-1].word) < len(bucket[j].word) {
				bucket[j-1], bucket[j] = bucket[j], bucket[j-1]
				j--
			}
		}
		keywordsByFirstByte[b] = bucket
	}
}

// longestKeyword returns the longest keyword spelling matching src at pos,
// without regard to what follows it; callers must separately check that the
// next byte (if any) is not an identifier-continuation character before
// admitting the match as a keyword token (spec §4.7, §4.9 step 4).
func longestKeyword(src []byte, pos int) (KeywordKind, int, bool) {
	if pos >= len(src) {
		return 0, 0, false
	}
	bucket := keywordsByFirstByte[src[pos]]
	for _, e := range bucket {
		l := len(e.word)
		if pos+l <= len(src) && string(src[pos:pos+l]) == e.word {
			return e.kind, l, true
		}
	}
	return 0, 0, false
}

// boolLiteralSpellings is the closed set of spellings that lex as a boolean
// literal rather than as a keyword or identifier (original BOOL_LITERALS).
var boolLiteralSpellings = []struct {
	word  string
	value bool
}{
	{"true", true}, {"True", true}, {"TRUE", true},
	{"false", false}, {"False", false}, {"FALSE", false},
}

// boolLiteralValue checks whether src matches one of boolLiteralSpellings at
// pos, not immediately followed by an identifier-continuation char. Boolean
// literals take priority over keyword admission (spec §4.9): "true" must
// lex as Literal(Boolean), never Keyword(True).
func boolLiteralValue(src []byte, pos int) (bool, int, bool) {
	for _, e := range boolLiteralSpellings {
		l := len(e.word)
		if pos+l <= len(src) && string(src[pos:pos+l]) == e.word {
			if pos+l < len(src) && isIdentifierChar(src[pos+l]) {
				continue
			}
			return e.value, l, true
		}
	}
	return false, 0, false
}
