package assistant

const playTypesText = `**Fantasy Play Types Explained:**

**SMASH PLAY:** Elite players (top 3 rank) with low ownership (under 15%). Premium tournament plays: elite production that most of the field is missing.

**LEVERAGE PLAY:** Solid players (top 5 rank) with moderate ownership (15-20%). Contrarian value without too much risk.

**CHALK PLAY:** Highly ranked players with high ownership (25%+). Safe for cash games but avoid in tournaments since everyone has them.

**Strategy:** Use SMASH plays in tournaments for differentiation and CHALK in cash games for safety. LEVERAGE plays are the middle ground.`

const stackingText = `**Stacking Strategy Guide:**

**Same-Game Stacking:** Play QB + WR/TE from the same team
- High correlation (QB success = WR success)
- Ceiling play for tournaments
- Higher risk if the team struggles

**Game Stacking:** Play players from both teams in high-scoring games
- Benefits from pace and total points
- Lower correlation risk

**Best Practices:**
- Stack in tournaments, not cash games
- Target games with 48+ point totals
- Consider weather for outdoor games`

const weatherText = `**Weather Impact Analysis:**

**High Wind (15+ mph):**
- Avoid passing games
- Target running backs
- Kickers struggle with accuracy

**Rain/Snow:**
- Passing efficiency drops
- More rushing attempts
- Defense/ST scoring opportunities

**Temperature:**
- Cold weather favors running
- Dome games have consistent conditions`

const gameStrategyText = `**Game Type Strategies:**

**Cash Games (50/50, Double-ups):**
- Use CHALK plays for safety
- High floor, consistent performers
- Avoid risky contrarian plays

**Tournaments (GPP):**
- Use SMASH and LEVERAGE plays
- High ceiling players with contrarian ownership
- Stack for correlation

**Key Difference:** Cash games reward consistency, tournaments reward uniqueness and ceiling.`

const helpText = `**I can help you with:**

- **Player Analysis** - "Who are the best contrarian plays this week?"
- **Strategy Questions** - "What's the best tournament strategy?"
- **Play Types** - "Explain SMASH vs LEVERAGE vs CHALK"
- **Stacking** - "What's the best QB WR stacking strategy?"
- **Weather** - "How does wind affect passing games?"

Try asking a specific question about players, strategy, or lineup building.`
