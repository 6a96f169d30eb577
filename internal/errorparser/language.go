// Package errorparser implements the Error Parser pipeline (spec §4.6):
// language/framework detection, two-pass error-type classification,
// whitelist-priority key-term extraction, and stackoverflow-ranked result
// filtering for the translate_error tool.
package errorparser

import (
	"regexp"
	"strings"

	"github.com/jinterlante1206/research-assistant/internal/model"
)

var jsTSPattern = regexp.MustCompile(`\.(jsx|tsx|js|ts)\b`)

var jsSpecificPhrases = []string{
	"TypeError:", "ReferenceError:", "SyntaxError:", "at Object.",
	"node_modules", "npm ERR", "Uncaught",
}

var pythonPatterns = []string{"Traceback (most recent call last)", "File \"", ".py\"", "line "}

var rustPatterns = []string{"error[E", "thread '", "panicked at", "cargo:"}

var javaPatterns = []string{"Exception in thread", ".java:", "at java.", "Caused by:"}

var goPatterns = []string{"panic:", "goroutine ", ".go:", "runtime error:"}

// DetectLanguage classifies errorText into one of the supported
// languages. JS/TS signals are checked before Python's, because a bare
// `File "..."` phrase is ambiguous between the two.
func DetectLanguage(errorText string) model.Language {
	if jsTSPattern.MatchString(errorText) || containsAny(errorText, jsSpecificPhrases) {
		if strings.Contains(errorText, ".tsx") || strings.Contains(errorText, ".ts") || strings.Contains(errorText, "TS2") {
			return model.LangTS
		}
		return model.LangJS
	}
	if containsAny(errorText, pythonPatterns) {
		return model.LangPython
	}
	if containsAny(errorText, rustPatterns) {
		return model.LangRust
	}
	if containsAny(errorText, javaPatterns) {
		return model.LangJava
	}
	if containsAny(errorText, goPatterns) {
		return model.LangGo
	}
	return model.LangUnknown
}

type frameworkSignature struct {
	framework model.Framework
	tokens    []string
}

// frameworkSignatures is checked in order, most-specific frameworks first
// (Next before React, FastAPI before Flask) so a text mentioning both a
// meta-framework and its base library classifies as the meta-framework.
var frameworkSignatures = []frameworkSignature{
	{model.FrameworkNext, []string{"next/router", "next/link", "getServerSideProps", "getStaticProps"}},
	{model.FrameworkReact, []string{"react-dom", "React.", "useState", "useEffect", "jsx"}},
	{model.FrameworkVue, []string{"vue-router", "Vue.", "v-if", "v-for", "Vuex"}},
	{model.FrameworkAngular, []string{"@angular/", "NgModule", "zone.js"}},
	{model.FrameworkFastAPI, []string{"fastapi.", "from fastapi import", "pydantic"}},
	{model.FrameworkDjango, []string{"django.core", "django.db", "DisallowedHost", "rest_framework"}},
	{model.FrameworkFlask, []string{"flask.app", "from flask import", "werkzeug"}},
	{model.FrameworkExpress, []string{"express()", "from express", "require('express')"}},
}

// DetectFramework searches the full input text for framework-signature
// tokens, returning FrameworkNone when nothing matches.
func DetectFramework(text string) model.Framework {
	for _, sig := range frameworkSignatures {
		if containsAny(text, sig.tokens) {
			return sig.framework
		}
	}
	return model.FrameworkNone
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
