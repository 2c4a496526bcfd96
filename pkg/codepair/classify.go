package codepair

// ClassOf returns the wire value Kind a reader must decode for the given
// group code, and a writer must emit. Ranges follow the classic DXF group
// code table; codes 290-369 are further split between Bool/Binary/Handle:
// 290-299 bool, 310-319 binary, 320-329 handle-as-string (kept as String so
// a plain hex handle round-trips byte for byte), 330-369 native handle.
//
// Codes >= 1000 (XDATA) are not classified here: the XDATA reader in
// pkg/xdata applies its own per-code leaf typing once it has recognized the
// 1001 app-name boundary.
func ClassOf(code int) Kind {
	switch {
	case code >= 0 && code <= 9:
		return KindString
	case code >= 10 && code <= 59:
		return KindDouble
	case code >= 60 && code <= 79:
		return KindShort
	case code >= 90 && code <= 99:
		return KindInt
	case code >= 100 && code <= 109:
		return KindString // subclass markers (100), ext-data group names (102)
	case code == 105:
		return KindString
	case code >= 110 && code <= 149:
		return KindDouble
	case code >= 160 && code <= 169:
		return KindLong
	case code >= 170 && code <= 179:
		return KindShort
	case code >= 210 && code <= 239:
		return KindDouble
	case code >= 270 && code <= 289:
		return KindShort
	case code >= 290 && code <= 299:
		return KindBool
	case code >= 300 && code <= 309:
		return KindString
	case code >= 310 && code <= 319:
		return KindBinary
	case code >= 320 && code <= 329:
		return KindString
	case code >= 330 && code <= 369:
		return KindHandle
	case code >= 370 && code <= 389:
		return KindShort
	case code >= 390 && code <= 399:
		return KindString
	case code >= 400 && code <= 409:
		return KindShort
	case code >= 410 && code <= 419:
		return KindString
	case code >= 420 && code <= 429:
		return KindInt
	case code >= 430 && code <= 439:
		return KindString
	case code >= 440 && code <= 449:
		return KindInt
	case code >= 450 && code <= 459:
		return KindLong
	case code >= 460 && code <= 469:
		return KindDouble
	case code >= 470 && code <= 481:
		return KindString
	case code == 999:
		return KindString
	default:
		return KindString
	}
}

// IsHandleAsString reports whether code lies in the 320-329 range, where the
// wire value is textual but semantically a handle reference.
func IsHandleAsString(code int) bool {
	return code >= 320 && code <= 329
}
