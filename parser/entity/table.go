package entity

// named maps reference names, including their terminating semicolon, to
// replacement text. The data is a subset of the named character references
// table of the HTML standard; names not listed here are not recognized.
// https://html.spec.whatwg.org/multipage/named-characters.html
var named = map[string]string{
	"AElig;":    "Æ",
	"AMP;":      "&",
	"Aacute;":   "Á",
	"Acirc;":    "Â",
	"Agrave;":   "À",
	"Alpha;":    "Α",
	"Aring;":    "Å",
	"Atilde;":   "Ã",
	"Auml;":     "Ä",
	"Beta;":     "Β",
	"COPY;":     "©",
	"Ccedil;":   "Ç",
	"Chi;":      "Χ",
	"Dagger;":   "‡",
	"Delta;":    "Δ",
	"ETH;":      "Ð",
	"Eacute;":   "É",
	"Ecirc;":    "Ê",
	"Egrave;":   "È",
	"Epsilon;":  "Ε",
	"Eta;":      "Η",
	"Euml;":     "Ë",
	"GT;":       ">",
	"Gamma;":    "Γ",
	"Iacute;":   "Í",
	"Icirc;":    "Î",
	"Igrave;":   "Ì",
	"Iota;":     "Ι",
	"Iuml;":     "Ï",
	"Kappa;":    "Κ",
	"LT;":       "<",
	"Lambda;":   "Λ",
	"Mu;":       "Μ",
	"Ntilde;":   "Ñ",
	"Nu;":       "Ν",
	"OElig;":    "Œ",
	"Oacute;":   "Ó",
	"Ocirc;":    "Ô",
	"Ograve;":   "Ò",
	"Omega;":    "Ω",
	"Omicron;":  "Ο",
	"Oslash;":   "Ø",
	"Otilde;":   "Õ",
	"Ouml;":     "Ö",
	"Phi;":      "Φ",
	"Pi;":       "Π",
	"Prime;":    "″",
	"Psi;":      "Ψ",
	"QUOT;":     "\"",
	"REG;":      "®",
	"Rho;":      "Ρ",
	"Scaron;":   "Š",
	"Sigma;":    "Σ",
	"THORN;":    "Þ",
	"Tau;":      "Τ",
	"Theta;":    "Θ",
	"Uacute;":   "Ú",
	"Ucirc;":    "Û",
	"Ugrave;":   "Ù",
	"Upsilon;":  "Υ",
	"Uuml;":     "Ü",
	"Xi;":       "Ξ",
	"Yacute;":   "Ý",
	"Yuml;":     "Ÿ",
	"Zeta;":     "Ζ",
	"aacute;":   "á",
	"acirc;":    "â",
	"acute;":    "´",
	"aelig;":    "æ",
	"agrave;":   "à",
	"alefsym;":  "ℵ",
	"alpha;":    "α",
	"amp;":      "&",
	"and;":      "∧",
	"ang;":      "∠",
	"apos;":     "'",
	"aring;":    "å",
	"asymp;":    "≈",
	"atilde;":   "ã",
	"auml;":     "ä",
	"bdquo;":    "„",
	"beta;":     "β",
	"brvbar;":   "¦",
	"bull;":     "•",
	"cap;":      "∩",
	"ccedil;":   "ç",
	"cedil;":    "¸",
	"cent;":     "¢",
	"chi;":      "χ",
	"circ;":     "ˆ",
	"clubs;":    "♣",
	"cong;":     "≅",
	"copy;":     "©",
	"crarr;":    "↵",
	"cup;":      "∪",
	"curren;":   "¤",
	"dArr;":     "⇓",
	"dagger;":   "†",
	"darr;":     "↓",
	"deg;":      "°",
	"delta;":    "δ",
	"diams;":    "♦",
	"divide;":   "÷",
	"eacute;":   "é",
	"ecirc;":    "ê",
	"egrave;":   "è",
	"empty;":    "∅",
	"emsp;":     " ",
	"ensp;":     " ",
	"epsilon;":  "ε",
	"equiv;":    "≡",
	"eta;":      "η",
	"eth;":      "ð",
	"euml;":     "ë",
	"euro;":     "€",
	"exist;":    "∃",
	"fnof;":     "ƒ",
	"forall;":   "∀",
	"frac12;":   "½",
	"frac14;":   "¼",
	"frac34;":   "¾",
	"frasl;":    "⁄",
	"gamma;":    "γ",
	"ge;":       "≥",
	"gt;":       ">",
	"hArr;":     "⇔",
	"harr;":     "↔",
	"hearts;":   "♥",
	"hellip;":   "…",
	"iacute;":   "í",
	"icirc;":    "î",
	"iexcl;":    "¡",
	"igrave;":   "ì",
	"infin;":    "∞",
	"int;":      "∫",
	"iota;":     "ι",
	"iquest;":   "¿",
	"isin;":     "∈",
	"iuml;":     "ï",
	"kappa;":    "κ",
	"lArr;":     "⇐",
	"lambda;":   "λ",
	"lang;":     "⟨",
	"laquo;":    "«",
	"larr;":     "←",
	"lceil;":    "⌈",
	"ldquo;":    "“",
	"le;":       "≤",
	"lfloor;":   "⌊",
	"lowast;":   "∗",
	"loz;":      "◊",
	"lrm;":      "‎",
	"lsaquo;":   "‹",
	"lsquo;":    "‘",
	"lt;":       "<",
	"macr;":     "¯",
	"mdash;":    "—",
	"micro;":    "µ",
	"middot;":   "·",
	"minus;":    "−",
	"mu;":       "μ",
	"nabla;":    "∇",
	"nbsp;":     " ",
	"ndash;":    "–",
	"ne;":       "≠",
	"ni;":       "∋",
	"not;":      "¬",
	"notin;":    "∉",
	"nsub;":     "⊄",
	"ntilde;":   "ñ",
	"nu;":       "ν",
	"oacute;":   "ó",
	"ocirc;":    "ô",
	"oelig;":    "œ",
	"ograve;":   "ò",
	"oline;":    "‾",
	"omega;":    "ω",
	"omicron;":  "ο",
	"oplus;":    "⊕",
	"or;":       "∨",
	"ordf;":     "ª",
	"ordm;":     "º",
	"oslash;":   "ø",
	"otilde;":   "õ",
	"otimes;":   "⊗",
	"ouml;":     "ö",
	"para;":     "¶",
	"part;":     "∂",
	"permil;":   "‰",
	"perp;":     "⊥",
	"phi;":      "φ",
	"pi;":       "π",
	"piv;":      "ϖ",
	"plusmn;":   "±",
	"pound;":    "£",
	"prime;":    "′",
	"prod;":     "∏",
	"prop;":     "∝",
	"psi;":      "ψ",
	"quot;":     "\"",
	"rArr;":     "⇒",
	"radic;":    "√",
	"rang;":     "⟩",
	"raquo;":    "»",
	"rarr;":     "→",
	"rceil;":    "⌉",
	"rdquo;":    "”",
	"reg;":      "®",
	"rfloor;":   "⌋",
	"rho;":      "ρ",
	"rlm;":      "‏",
	"rsaquo;":   "›",
	"rsquo;":    "’",
	"sbquo;":    "‚",
	"scaron;":   "š",
	"sdot;":     "⋅",
	"sect;":     "§",
	"shy;":      "­",
	"sigma;":    "σ",
	"sigmaf;":   "ς",
	"sim;":      "∼",
	"spades;":   "♠",
	"sub;":      "⊂",
	"sube;":     "⊆",
	"sum;":      "∑",
	"sup1;":     "¹",
	"sup2;":     "²",
	"sup3;":     "³",
	"sup;":      "⊃",
	"supe;":     "⊇",
	"szlig;":    "ß",
	"tau;":      "τ",
	"there4;":   "∴",
	"theta;":    "θ",
	"thetasym;": "ϑ",
	"thinsp;":   " ",
	"thorn;":    "þ",
	"tilde;":    "˜",
	"times;":    "×",
	"trade;":    "™",
	"uArr;":     "⇑",
	"uacute;":   "ú",
	"uarr;":     "↑",
	"ucirc;":    "û",
	"ugrave;":   "ù",
	"uml;":      "¨",
	"upsih;":    "ϒ",
	"upsilon;":  "υ",
	"uuml;":     "ü",
	"xi;":       "ξ",
	"yacute;":   "ý",
	"yen;":      "¥",
	"yuml;":     "ÿ",
	"zeta;":     "ζ",
	"zwj;":      "‍",
	"zwnj;":     "‌",
}

// legacyNames lists the references that may appear without a semicolon.
// https://html.spec.whatwg.org/multipage/parsing.html#named-character-reference-state
var legacyNames = []string{
	"AElig", "AMP", "Aacute", "Acirc", "Agrave", "Aring", "Atilde", "Auml",
	"COPY", "Ccedil", "ETH", "Eacute", "Ecirc", "Egrave", "Euml", "GT",
	"Iacute", "Icirc", "Igrave", "Iuml", "LT", "Ntilde", "Oacute", "Ocirc",
	"Ograve", "Oslash", "Otilde", "Ouml", "QUOT", "REG", "THORN", "Uacute",
	"Ucirc", "Ugrave", "Uuml", "Yacute", "aacute", "acirc", "acute",
	"aelig", "agrave", "amp", "aring", "atilde", "auml", "brvbar", "ccedil",
	"cedil", "cent", "copy", "curren", "deg", "divide", "eacute", "ecirc",
	"egrave", "eth", "euml", "frac12", "frac14", "frac34", "gt", "iacute",
	"icirc", "iexcl", "igrave", "iquest", "iuml", "laquo", "lt", "macr",
	"micro", "middot", "nbsp", "not", "ntilde", "oacute", "ocirc", "ograve",
	"ordf", "ordm", "oslash", "otilde", "ouml", "para", "plusmn", "pound",
	"quot", "raquo", "reg", "sect", "shy", "sup1", "sup2", "sup3", "szlig",
	"thorn", "times", "uacute", "ucirc", "ugrave", "uml", "uuml", "yacute",
	"yen", "yuml",
}

var legacy = make(map[string]string, len(legacyNames))

func init() {
	for _, name := range legacyNames {
		legacy[name] = named[name+";"]
	}
}
