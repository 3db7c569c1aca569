package script

import "strings"

// Extract runs both extraction passes over a unit and returns its facts.
// It never fails; unrecognized or malformed content is skipped or parsed
// best-effort.
func Extract(u Unit) Facts {
	f := Facts{
		UnitID:  u.ID,
		Content: make(map[ContentType]bool),
	}

	lines := strings.Split(u.Text, "\n")

	extractCharacters(u, lines, &f)
	extractLines(u, lines, &f)

	return f
}

// extractCharacters is pass 1: a whole-text scan for character constructors.
// Constructors may span multiple lines, so the argument list is taken from a
// balanced-parenthesis scan starting at the opening paren rather than from a
// single line.
func extractCharacters(u Unit, lines []string, f *Facts) {
	for _, m := range characterDefRe.FindAllStringSubmatchIndex(u.Text, -1) {
		tag := u.Text[m[2]:m[3]]
		raw, _ := scanBalanced(u.Text, m[1])

		def := CharacterDef{
			Tag:    tag,
			UnitID: u.ID,
		}

		for i, arg := range ScanArgs(raw) {
			switch {
			case arg.Name == "":
				if i == 0 {
					def.DisplayName = unquote(arg.Value)
				}
			case arg.Name == "color":
				def.Color = unquote(arg.Value)
			default:
				if def.Attrs == nil {
					def.Attrs = make(map[string]string)
				}
				def.Attrs[arg.Name] = arg.Value
			}
		}

		def.ProfileNote = profileNoteAbove(lines, lineOfOffset(u.Text, m[0]))
		f.Characters = append(f.Characters, def)
	}
}

// profileNoteAbove looks upward from the definition line, skipping blank
// lines, and returns the note if the nearest non-blank line is a comment of
// the exact form `# profile: <text>`.
func profileNoteAbove(lines []string, defLine int) string {
	for i := defLine - 1; i >= 0; i-- {
		if blankRe.MatchString(lines[i]) {
			continue
		}
		if m := profileRe.FindStringSubmatch(lines[i]); m != nil {
			return m[1]
		}
		return ""
	}
	return ""
}

// lineOfOffset converts a byte offset into a zero-based line number.
func lineOfOffset(text string, offset int) int {
	return strings.Count(text[:offset], "\n")
}

// extractLines is pass 2: every line is tested independently against each
// line-oriented pattern, in file order.
func extractLines(u Unit, lines []string, f *Facts) {
	for i, line := range lines {
		if m := labelRe.FindStringSubmatchIndex(line); m != nil {
			f.Labels = append(f.Labels, Label{
				Name:   line[m[4]:m[5]],
				UnitID: u.ID,
				Line:   i,
				Column: m[4],
				Kind:   LabelPlain,
			})
			if f.FirstLabel == "" {
				f.FirstLabel = line[m[4]:m[5]]
			}
		}

		if m := menuLabelRe.FindStringSubmatchIndex(line); m != nil {
			f.Labels = append(f.Labels, Label{
				Name:   line[m[4]:m[5]],
				UnitID: u.ID,
				Line:   i,
				Column: m[4],
				Kind:   LabelMenu,
			})
			if f.FirstLabel == "" {
				f.FirstLabel = line[m[4]:m[5]]
			}
			f.Content[ContentMenu] = true
		} else if menuRe.MatchString(line) {
			f.Content[ContentMenu] = true
		}

		if m := screenRe.FindStringSubmatch(line); m != nil {
			f.Screens = append(f.Screens, ScreenDef{
				Name:   m[1],
				Params: m[2],
				UnitID: u.ID,
				Line:   i,
			})
		}

		if m := defineRe.FindStringSubmatch(line); m != nil && !characterRHSRe.MatchString(m[3]) {
			f.Variables = append(f.Variables, VariableDef{
				Name:   m[2],
				Kind:   VariableKind(m[1]),
				Value:  m[3],
				UnitID: u.ID,
				Line:   i,
			})
		}

		for _, t := range transferRe.FindAllStringSubmatchIndex(line, -1) {
			// `call screen x` shows a screen, it is not a control transfer
			if line[t[6]:t[7]] == "screen" {
				continue
			}
			f.Transfers = append(f.Transfers, Transfer{
				UnitID:   u.ID,
				Target:   line[t[6]:t[7]],
				Kind:     TransferKind(line[t[2]:t[3]]),
				Dynamic:  t[4] != -1,
				Line:     i,
				ColStart: t[6],
				ColEnd:   t[7],
			})
			f.Content[ContentTransfers] = true
		}

		if returnRe.MatchString(line) {
			f.Returns = append(f.Returns, i)
		}

		if m := speakerRe.FindStringSubmatch(line); m != nil {
			f.Speakers = append(f.Speakers, SpeakerLine{Line: i, Tag: m[1]})
		} else if narrationRe.MatchString(line) {
			f.Narration = append(f.Narration, i)
		}

		if m := imageRe.FindStringSubmatch(line); m != nil {
			f.Images = append(f.Images, m[1])
		} else if m := showRe.FindStringSubmatch(line); m != nil {
			f.Shows = append(f.Shows, AssetRef{Name: m[1], UnitID: u.ID, Line: i})
		}

		if m := playRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			if name == "" {
				name = m[2]
			}
			f.Plays = append(f.Plays, AssetRef{Name: name, UnitID: u.ID, Line: i})
		}

		if pythonRe.MatchString(line) {
			f.Content[ContentPython] = true
		}
	}
}
