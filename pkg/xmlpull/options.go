package xmlpull

// Options holds parser configuration values.
// The zero value means no overrides.
type Options struct {
	maxDepth       int
	emitEmptyData  bool
	strictEntities bool
	strictEndTags  bool

	maxDepthSet       bool
	emitEmptyDataSet  bool
	strictEntitiesSet bool
	strictEndTagsSet  bool
}

// JoinOptions combines multiple option sets into one in declaration order.
// Later options override earlier ones when set.
func JoinOptions(srcs ...Options) Options {
	var merged Options
	for _, src := range srcs {
		merged.merge(src)
	}
	return merged
}

func (opts *Options) merge(src Options) {
	if src.maxDepthSet {
		opts.maxDepth = src.maxDepth
		opts.maxDepthSet = true
	}
	if src.emitEmptyDataSet {
		opts.emitEmptyData = src.emitEmptyData
		opts.emitEmptyDataSet = true
	}
	if src.strictEntitiesSet {
		opts.strictEntities = src.strictEntities
		opts.strictEntitiesSet = true
	}
	if src.strictEndTagsSet {
		opts.strictEndTags = src.strictEndTags
		opts.strictEndTagsSet = true
	}
}

// EmitEmptyData controls whether an opening tag directly followed by its
// closing tag is reported as KindData with empty text (the default) or as
// KindElement.
func EmitEmptyData(value bool) Options {
	return Options{emitEmptyData: value, emitEmptyDataSet: true}
}

// StrictEntities reports unknown entity names as malformed input instead of
// dropping them.
func StrictEntities(value bool) Options {
	return Options{strictEntities: value, strictEntitiesSet: true}
}

// StrictEndTags requires closing tag names to match the open element.
func StrictEndTags(value bool) Options {
	return Options{strictEndTags: value, strictEndTagsSet: true}
}

// MaxDepth limits element nesting depth. Zero means unlimited.
func MaxDepth(value int) Options {
	return Options{maxDepth: value, maxDepthSet: true}
}

type parserOptions struct {
	maxDepth       int
	emitEmptyData  bool
	strictEntities bool
	strictEndTags  bool
}

func resolveOptions(opts Options) parserOptions {
	resolved := parserOptions{emitEmptyData: true}
	if opts.maxDepthSet && opts.maxDepth > 0 {
		resolved.maxDepth = opts.maxDepth
	}
	if opts.emitEmptyDataSet {
		resolved.emitEmptyData = opts.emitEmptyData
	}
	if opts.strictEntitiesSet {
		resolved.strictEntities = opts.strictEntities
	}
	if opts.strictEndTagsSet {
		resolved.strictEndTags = opts.strictEndTags
	}
	return resolved
}
