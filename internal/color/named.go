package color

import "strings"

// Named resolves a CSS color keyword, case-insensitively.
func Named(name string) (RGBA, bool) {
	c, ok := namedColors[strings.ToLower(name)]
	return c, ok
}

// IsNamed reports whether name is a known color keyword.
func IsNamed(name string) bool {
	_, ok := namedColors[strings.ToLower(name)]
	return ok
}

// CSS3 extended color keywords.
// https://www.w3.org/TR/css-color-3/#svg-color
var namedColors = map[string]RGBA{
	"aliceblue":            {R: 0xf0, G: 0xf8, B: 0xff, A: 1},
	"antiquewhite":         {R: 0xfa, G: 0xeb, B: 0xd7, A: 1},
	"aqua":                 {R: 0x00, G: 0xff, B: 0xff, A: 1},
	"aquamarine":           {R: 0x7f, G: 0xff, B: 0xd4, A: 1},
	"azure":                {R: 0xf0, G: 0xff, B: 0xff, A: 1},
	"beige":                {R: 0xf5, G: 0xf5, B: 0xdc, A: 1},
	"bisque":               {R: 0xff, G: 0xe4, B: 0xc4, A: 1},
	"black":                {R: 0x00, G: 0x00, B: 0x00, A: 1},
	"blanchedalmond":       {R: 0xff, G: 0xeb, B: 0xcd, A: 1},
	"blue":                 {R: 0x00, G: 0x00, B: 0xff, A: 1},
	"blueviolet":           {R: 0x8a, G: 0x2b, B: 0xe2, A: 1},
	"brown":                {R: 0xa5, G: 0x2a, B: 0x2a, A: 1},
	"burlywood":            {R: 0xde, G: 0xb8, B: 0x87, A: 1},
	"cadetblue":            {R: 0x5f, G: 0x9e, B: 0xa0, A: 1},
	"chartreuse":           {R: 0x7f, G: 0xff, B: 0x00, A: 1},
	"chocolate":            {R: 0xd2, G: 0x69, B: 0x1e, A: 1},
	"coral":                {R: 0xff, G: 0x7f, B: 0x50, A: 1},
	"cornflowerblue":       {R: 0x64, G: 0x95, B: 0xed, A: 1},
	"cornsilk":             {R: 0xff, G: 0xf8, B: 0xdc, A: 1},
	"crimson":              {R: 0xdc, G: 0x14, B: 0x3c, A: 1},
	"cyan":                 {R: 0x00, G: 0xff, B: 0xff, A: 1},
	"darkblue":             {R: 0x00, G: 0x00, B: 0x8b, A: 1},
	"darkcyan":             {R: 0x00, G: 0x8b, B: 0x8b, A: 1},
	"darkgoldenrod":        {R: 0xb8, G: 0x86, B: 0x0b, A: 1},
	"darkgray":             {R: 0xa9, G: 0xa9, B: 0xa9, A: 1},
	"darkgreen":            {R: 0x00, G: 0x64, B: 0x00, A: 1},
	"darkgrey":             {R: 0xa9, G: 0xa9, B: 0xa9, A: 1},
	"darkkhaki":            {R: 0xbd, G: 0xb7, B: 0x6b, A: 1},
	"darkmagenta":          {R: 0x8b, G: 0x00, B: 0x8b, A: 1},
	"darkolivegreen":       {R: 0x55, G: 0x6b, B: 0x2f, A: 1},
	"darkorange":           {R: 0xff, G: 0x8c, B: 0x00, A: 1},
	"darkorchid":           {R: 0x99, G: 0x32, B: 0xcc, A: 1},
	"darkred":              {R: 0x8b, G: 0x00, B: 0x00, A: 1},
	"darksalmon":           {R: 0xe9, G: 0x96, B: 0x7a, A: 1},
	"darkseagreen":         {R: 0x8f, G: 0xbc, B: 0x8f, A: 1},
	"darkslateblue":        {R: 0x48, G: 0x3d, B: 0x8b, A: 1},
	"darkslategray":        {R: 0x2f, G: 0x4f, B: 0x4f, A: 1},
	"darkslategrey":        {R: 0x2f, G: 0x4f, B: 0x4f, A: 1},
	"darkturquoise":        {R: 0x00, G: 0xce, B: 0xd1, A: 1},
	"darkviolet":           {R: 0x94, G: 0x00, B: 0xd3, A: 1},
	"deeppink":             {R: 0xff, G: 0x14, B: 0x93, A: 1},
	"deepskyblue":          {R: 0x00, G: 0xbf, B: 0xff, A: 1},
	"dimgray":              {R: 0x69, G: 0x69, B: 0x69, A: 1},
	"dimgrey":              {R: 0x69, G: 0x69, B: 0x69, A: 1},
	"dodgerblue":           {R: 0x1e, G: 0x90, B: 0xff, A: 1},
	"firebrick":            {R: 0xb2, G: 0x22, B: 0x22, A: 1},
	"floralwhite":          {R: 0xff, G: 0xfa, B: 0xf0, A: 1},
	"forestgreen":          {R: 0x22, G: 0x8b, B: 0x22, A: 1},
	"fuchsia":              {R: 0xff, G: 0x00, B: 0xff, A: 1},
	"gainsboro":            {R: 0xdc, G: 0xdc, B: 0xdc, A: 1},
	"ghostwhite":           {R: 0xf8, G: 0xf8, B: 0xff, A: 1},
	"gold":                 {R: 0xff, G: 0xd7, B: 0x00, A: 1},
	"goldenrod":            {R: 0xda, G: 0xa5, B: 0x20, A: 1},
	"gray":                 {R: 0x80, G: 0x80, B: 0x80, A: 1},
	"green":                {R: 0x00, G: 0x80, B: 0x00, A: 1},
	"greenyellow":          {R: 0xad, G: 0xff, B: 0x2f, A: 1},
	"grey":                 {R: 0x80, G: 0x80, B: 0x80, A: 1},
	"honeydew":             {R: 0xf0, G: 0xff, B: 0xf0, A: 1},
	"hotpink":              {R: 0xff, G: 0x69, B: 0xb4, A: 1},
	"indianred":            {R: 0xcd, G: 0x5c, B: 0x5c, A: 1},
	"indigo":               {R: 0x4b, G: 0x00, B: 0x82, A: 1},
	"ivory":                {R: 0xff, G: 0xff, B: 0xf0, A: 1},
	"khaki":                {R: 0xf0, G: 0xe6, B: 0x8c, A: 1},
	"lavender":             {R: 0xe6, G: 0xe6, B: 0xfa, A: 1},
	"lavenderblush":        {R: 0xff, G: 0xf0, B: 0xf5, A: 1},
	"lawngreen":            {R: 0x7c, G: 0xfc, B: 0x00, A: 1},
	"lemonchiffon":         {R: 0xff, G: 0xfa, B: 0xcd, A: 1},
	"lightblue":            {R: 0xad, G: 0xd8, B: 0xe6, A: 1},
	"lightcoral":           {R: 0xf0, G: 0x80, B: 0x80, A: 1},
	"lightcyan":            {R: 0xe0, G: 0xff, B: 0xff, A: 1},
	"lightgoldenrodyellow": {R: 0xfa, G: 0xfa, B: 0xd2, A: 1},
	"lightgray":            {R: 0xd3, G: 0xd3, B: 0xd3, A: 1},
	"lightgreen":           {R: 0x90, G: 0xee, B: 0x90, A: 1},
	"lightgrey":            {R: 0xd3, G: 0xd3, B: 0xd3, A: 1},
	"lightpink":            {R: 0xff, G: 0xb6, B: 0xc1, A: 1},
	"lightsalmon":          {R: 0xff, G: 0xa0, B: 0x7a, A: 1},
	"lightseagreen":        {R: 0x20, G: 0xb2, B: 0xaa, A: 1},
	"lightskyblue":         {R: 0x87, G: 0xce, B: 0xfa, A: 1},
	"lightslategray":       {R: 0x77, G: 0x88, B: 0x99, A: 1},
	"lightslategrey":       {R: 0x77, G: 0x88, B: 0x99, A: 1},
	"lightsteelblue":       {R: 0xb0, G: 0xc4, B: 0xde, A: 1},
	"lightyellow":          {R: 0xff, G: 0xff, B: 0xe0, A: 1},
	"lime":                 {R: 0x00, G: 0xff, B: 0x00, A: 1},
	"limegreen":            {R: 0x32, G: 0xcd, B: 0x32, A: 1},
	"linen":                {R: 0xfa, G: 0xf0, B: 0xe6, A: 1},
	"magenta":              {R: 0xff, G: 0x00, B: 0xff, A: 1},
	"maroon":               {R: 0x80, G: 0x00, B: 0x00, A: 1},
	"mediumaquamarine":     {R: 0x66, G: 0xcd, B: 0xaa, A: 1},
	"mediumblue":           {R: 0x00, G: 0x00, B: 0xcd, A: 1},
	"mediumorchid":         {R: 0xba, G: 0x55, B: 0xd3, A: 1},
	"mediumpurple":         {R: 0x93, G: 0x70, B: 0xdb, A: 1},
	"mediumseagreen":       {R: 0x3c, G: 0xb3, B: 0x71, A: 1},
	"mediumslateblue":      {R: 0x7b, G: 0x68, B: 0xee, A: 1},
	"mediumspringgreen":    {R: 0x00, G: 0xfa, B: 0x9a, A: 1},
	"mediumturquoise":      {R: 0x48, G: 0xd1, B: 0xcc, A: 1},
	"mediumvioletred":      {R: 0xc7, G: 0x15, B: 0x85, A: 1},
	"midnightblue":         {R: 0x19, G: 0x19, B: 0x70, A: 1},
	"mintcream":            {R: 0xf5, G: 0xff, B: 0xfa, A: 1},
	"mistyrose":            {R: 0xff, G: 0xe4, B: 0xe1, A: 1},
	"moccasin":             {R: 0xff, G: 0xe4, B: 0xb5, A: 1},
	"navajowhite":          {R: 0xff, G: 0xde, B: 0xad, A: 1},
	"navy":                 {R: 0x00, G: 0x00, B: 0x80, A: 1},
	"oldlace":              {R: 0xfd, G: 0xf5, B: 0xe6, A: 1},
	"olive":                {R: 0x80, G: 0x80, B: 0x00, A: 1},
	"olivedrab":            {R: 0x6b, G: 0x8e, B: 0x23, A: 1},
	"orange":               {R: 0xff, G: 0xa5, B: 0x00, A: 1},
	"orangered":            {R: 0xff, G: 0x45, B: 0x00, A: 1},
	"orchid":               {R: 0xda, G: 0x70, B: 0xd6, A: 1},
	"palegoldenrod":        {R: 0xee, G: 0xe8, B: 0xaa, A: 1},
	"palegreen":            {R: 0x98, G: 0xfb, B: 0x98, A: 1},
	"paleturquoise":        {R: 0xaf, G: 0xee, B: 0xee, A: 1},
	"palevioletred":        {R: 0xdb, G: 0x70, B: 0x93, A: 1},
	"papayawhip":           {R: 0xff, G: 0xef, B: 0xd5, A: 1},
	"peachpuff":            {R: 0xff, G: 0xda, B: 0xb9, A: 1},
	"peru":                 {R: 0xcd, G: 0x85, B: 0x3f, A: 1},
	"pink":                 {R: 0xff, G: 0xc0, B: 0xcb, A: 1},
	"plum":                 {R: 0xdd, G: 0xa0, B: 0xdd, A: 1},
	"powderblue":           {R: 0xb0, G: 0xe0, B: 0xe6, A: 1},
	"purple":               {R: 0x80, G: 0x00, B: 0x80, A: 1},
	"rebeccapurple":        {R: 0x66, G: 0x33, B: 0x99, A: 1},
	"red":                  {R: 0xff, G: 0x00, B: 0x00, A: 1},
	"rosybrown":            {R: 0xbc, G: 0x8f, B: 0x8f, A: 1},
	"royalblue":            {R: 0x41, G: 0x69, B: 0xe1, A: 1},
	"saddlebrown":          {R: 0x8b, G: 0x45, B: 0x13, A: 1},
	"salmon":               {R: 0xfa, G: 0x80, B: 0x72, A: 1},
	"sandybrown":           {R: 0xf4, G: 0xa4, B: 0x60, A: 1},
	"seagreen":             {R: 0x2e, G: 0x8b, B: 0x57, A: 1},
	"seashell":             {R: 0xff, G: 0xf5, B: 0xee, A: 1},
	"sienna":               {R: 0xa0, G: 0x52, B: 0x2d, A: 1},
	"silver":               {R: 0xc0, G: 0xc0, B: 0xc0, A: 1},
	"skyblue":              {R: 0x87, G: 0xce, B: 0xeb, A: 1},
	"slateblue":            {R: 0x6a, G: 0x5a, B: 0xcd, A: 1},
	"slategray":            {R: 0x70, G: 0x80, B: 0x90, A: 1},
	"slategrey":            {R: 0x70, G: 0x80, B: 0x90, A: 1},
	"snow":                 {R: 0xff, G: 0xfa, B: 0xfa, A: 1},
	"springgreen":          {R: 0x00, G: 0xff, B: 0x7f, A: 1},
	"steelblue":            {R: 0x46, G: 0x82, B: 0xb4, A: 1},
	"tan":                  {R: 0xd2, G: 0xb4, B: 0x8c, A: 1},
	"teal":                 {R: 0x00, G: 0x80, B: 0x80, A: 1},
	"thistle":              {R: 0xd8, G: 0xbf, B: 0xd8, A: 1},
	"tomato":               {R: 0xff, G: 0x63, B: 0x47, A: 1},
	"turquoise":            {R: 0x40, G: 0xe0, B: 0xd0, A: 1},
	"violet":               {R: 0xee, G: 0x82, B: 0xee, A: 1},
	"wheat":                {R: 0xf5, G: 0xde, B: 0xb3, A: 1},
	"white":                {R: 0xff, G: 0xff, B: 0xff, A: 1},
	"whitesmoke":           {R: 0xf5, G: 0xf5, B: 0xf5, A: 1},
	"yellow":               {R: 0xff, G: 0xff, B: 0x00, A: 1},
	"yellowgreen":          {R: 0x9a, G: 0xcd, B: 0x32, A: 1},
}
